package attendance_test

import (
	"context"
	"testing"

	"github.com/trezcool/mahudhurio/core/attendance"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func TestService_SaveSheet(t *testing.T) {
	// kept in one flow: save, verify defaults, resubmit, verify idempotence
	ctx := context.Background()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	stdRepo := dummydb.NewStudentRepository(db)
	bchRepo := dummydb.NewBatchRepository(db)
	attRepo := dummydb.NewAttendanceRepository(db)
	svc := attendance.NewService(attRepo, stdRepo)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)
	john := testutil.CreateStudent(t, stdRepo, "john", bch.ID)
	mark := testutil.CreateStudent(t, stdRepo, "mark", "") // unassigned

	date := "2024-03-01"

	// only jane marked: john defaults to absent, mark is untouched
	err = svc.SaveSheet(ctx, attendance.SheetInput{
		BatchID: bch.ID,
		Date:    date,
		Marks:   map[string]bool{jane.ID: true},
	})
	if err != nil {
		t.Fatalf("SaveSheet() failed: %v", err)
	}

	records, err := attRepo.QueryRecords(ctx)
	if err != nil {
		t.Fatalf("QueryRecords() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	byStudent := make(map[string]bool, len(records))
	for _, rec := range records {
		byStudent[rec.StudentID] = rec.Present
	}
	if !byStudent[jane.ID] {
		t.Error("jane should be present")
	}
	if present, ok := byStudent[john.ID]; !ok || present {
		t.Error("john should default to absent")
	}
	if _, ok := byStudent[mark.ID]; ok {
		t.Error("mark is not in the batch; no record expected")
	}

	// resubmission flips marks in place, never duplicates
	err = svc.SaveSheet(ctx, attendance.SheetInput{
		BatchID: bch.ID,
		Date:    date,
		Marks:   map[string]bool{john.ID: true},
	})
	if err != nil {
		t.Fatalf("SaveSheet() failed: %v", err)
	}

	records, err = attRepo.QueryRecords(ctx)
	if err != nil {
		t.Fatalf("QueryRecords() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records after resubmit, want 2", len(records))
	}
	for _, rec := range records {
		wantPresent := rec.StudentID == john.ID
		if rec.Present != wantPresent {
			t.Errorf("student %s present = %v, want %v", rec.StudentID, rec.Present, wantPresent)
		}
	}
}

func TestService_Sheet(t *testing.T) {
	ctx := context.Background()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	stdRepo := dummydb.NewStudentRepository(db)
	bchRepo := dummydb.NewBatchRepository(db)
	attRepo := dummydb.NewAttendanceRepository(db)
	svc := attendance.NewService(attRepo, stdRepo)

	bch := testutil.CreateBatch(t, bchRepo, "Evening Batch B", 40)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)
	john := testutil.CreateStudent(t, stdRepo, "john", bch.ID)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-01", true)

	t.Run("no batch selected", func(t *testing.T) {
		sheet, err := svc.Sheet(ctx, "", "2024-03-01")
		if err != nil {
			t.Fatalf("Sheet() failed: %v", err)
		}
		if len(sheet.Students) != 0 || len(sheet.Marks) != 0 {
			t.Errorf("Sheet() = %+v, want empty sheet", sheet)
		}
	})

	t.Run("marks prefilled from records", func(t *testing.T) {
		sheet, err := svc.Sheet(ctx, bch.ID, "2024-03-01")
		if err != nil {
			t.Fatalf("Sheet() failed: %v", err)
		}
		if len(sheet.Students) != 2 {
			t.Fatalf("got %d students, want 2", len(sheet.Students))
		}
		if !sheet.Marks[jane.ID] {
			t.Error("jane should be marked present")
		}
		if sheet.Marks[john.ID] {
			t.Error("john has no record; should read as absent")
		}
		present, absent := sheet.Summary()
		if present != 1 || absent != 1 {
			t.Errorf("Summary() = (%d, %d), want (1, 1)", present, absent)
		}
	})

	t.Run("unmarked day", func(t *testing.T) {
		sheet, err := svc.Sheet(ctx, bch.ID, "2024-03-02")
		if err != nil {
			t.Fatalf("Sheet() failed: %v", err)
		}
		if len(sheet.Marks) != 0 {
			t.Errorf("got %d marks, want 0", len(sheet.Marks))
		}
		present, absent := sheet.Summary()
		if present != 0 || absent != 2 {
			t.Errorf("Summary() = (%d, %d), want (0, 2)", present, absent)
		}
	})
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	stdRepo := dummydb.NewStudentRepository(db)
	bchRepo := dummydb.NewBatchRepository(db)
	attRepo := dummydb.NewAttendanceRepository(db)
	svc := attendance.NewService(attRepo, stdRepo)

	bch := testutil.CreateBatch(t, bchRepo, "Weekend Batch C", 30)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-01", true)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-02", false)

	rows, sum, err := svc.Report(ctx, bch.ID, "2024-03")
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.TotalDays != 2 || row.PresentDays != 1 || row.AbsentDays != 1 || row.Percentage != 50 {
		t.Errorf("row = %+v, want 2 days, 1 present, 1 absent, 50%%", row)
	}
	if row.Status() != attendance.RatePoor {
		t.Errorf("Status() = %v, want %v", row.Status(), attendance.RatePoor)
	}
	if sum.TotalStudents != 1 || sum.AverageRate != 50 || sum.Poor != 1 {
		t.Errorf("summary = %+v, want 1 student, 50%% average, 1 poor", sum)
	}
}
