package dummydb_test

import (
	"context"
	"sync"
	"testing"

	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

// Deleting students drops their attendance records under both table locks;
// the sheet query reads the same two tables. Hammer both paths concurrently
// to make sure the lock ordering stays consistent.
func TestDB_concurrentDeleteAndSheetQuery(t *testing.T) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	stdRepo := dummydb.NewStudentRepository(db)
	bchRepo := dummydb.NewBatchRepository(db)
	attRepo := dummydb.NewAttendanceRepository(db)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)

	const n = 50
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		std := testutil.CreateStudent(t, stdRepo, "student", bch.ID)
		testutil.MarkAttendance(t, attRepo, std.ID, "2024-03-01", true)
		ids = append(ids, std.ID)
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, id := range ids {
			if err := stdRepo.DeleteStudentsByID(ctx, id); err != nil {
				t.Errorf("DeleteStudentsByID() failed: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range ids {
			if _, err := attRepo.QueryRecordsByDateAndBatch(ctx, "2024-03-01", bch.ID); err != nil {
				t.Errorf("QueryRecordsByDateAndBatch() failed: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	records, err := attRepo.QueryRecords(ctx)
	if err != nil {
		t.Fatalf("QueryRecords() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records left, want 0", len(records))
	}
}
