package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	"github.com/trezcool/mahudhurio/core/student"
)

func CreateBatch(
	t *testing.T,
	repo batch.Repository,
	name string,
	capacity int,
	createdDate ...string,
) batch.Batch {
	t.Helper()

	now := time.Now().UTC()
	created := now.Format("2006-01-02")
	if len(createdDate) > 0 {
		created = createdDate[0]
	}
	bch, err := repo.CreateBatch(context.Background(), batch.Batch{
		Name:        name,
		Capacity:    capacity,
		Schedule:    "9:00 AM - 12:00 PM",
		Instructor:  "Prof. Test",
		CreatedDate: created,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateBatch() failed: %v", err)
	}
	return bch
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, batchID string,
	fees ...float64,
) student.Student {
	t.Helper()

	var totalFees, feesPaid float64
	if len(fees) > 0 {
		totalFees = fees[0]
	}
	if len(fees) > 1 {
		feesPaid = fees[1]
	}

	now := time.Now().UTC()
	std, err := repo.CreateStudent(context.Background(), student.Student{
		Name:           name,
		Email:          name + "@test.cd",
		Mobile:         "9876543210",
		BatchID:        batchID,
		EnrollmentDate: now.Format("2006-01-02"),
		TotalFees:      totalFees,
		FeesPaid:       feesPaid,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func MarkAttendance(
	t *testing.T,
	repo attendance.Repository,
	studentID, date string,
	present bool,
) {
	t.Helper()

	now := time.Now().UTC()
	err := repo.UpsertRecords(context.Background(), []attendance.Record{{
		StudentID: studentID,
		Date:      date,
		Present:   present,
		CreatedAt: now,
		UpdatedAt: now,
	}})
	if err != nil {
		t.Fatalf("MarkAttendance() failed: %v", err)
	}
}
