package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/dashboard"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	stdRepo := dummydb.NewStudentRepository(db)
	bchRepo := dummydb.NewBatchRepository(db)
	attRepo := dummydb.NewAttendanceRepository(db)
	svc := dashboard.NewService(stdRepo, bchRepo, attRepo)

	now := time.Now().UTC()
	today := now.Format(core.DateFormat)
	month := now.Format(core.MonthFormat)

	t.Run("empty store", func(t *testing.T) {
		stats, err := svc.Stats(ctx, today, month)
		if err != nil {
			t.Fatalf("Stats() failed: %v", err)
		}
		if stats != (dashboard.Stats{}) {
			t.Errorf("Stats() = %+v, want zero value", stats)
		}
	})

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID, 300, 150)
	john := testutil.CreateStudent(t, stdRepo, "john", bch.ID, 200, 200)
	testutil.MarkAttendance(t, attRepo, jane.ID, today, true)
	testutil.MarkAttendance(t, attRepo, john.ID, today, false)

	t.Run("populated store", func(t *testing.T) {
		stats, err := svc.Stats(ctx, today, month)
		if err != nil {
			t.Fatalf("Stats() failed: %v", err)
		}
		want := dashboard.Stats{
			TotalStudents:   2,
			TotalBatches:    1,
			TodayAttendance: 1,
			AttendanceRate:  50,
			TotalFees:       500,
			TotalFeesPaid:   350,
			TotalFeesDue:    150,
		}
		if stats != want {
			t.Errorf("Stats() = %+v, want %+v", stats, want)
		}
	})
}
