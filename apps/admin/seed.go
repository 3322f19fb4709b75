package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	"github.com/trezcool/mahudhurio/core/student"
)

type (
	seedStudent struct {
		student.Student
		batchIdx int // index into the seeded batches
		marks    []seedMark
	}

	seedMark struct {
		date    string
		present bool
	}
)

var (
	seedBatches = []batch.Batch{
		{
			Name:        "Morning Batch A",
			Capacity:    35,
			Schedule:    "9:00 AM - 12:00 PM",
			Instructor:  "Prof. Smith",
			CreatedDate: "2024-01-01",
		},
		{
			Name:        "Evening Batch B",
			Capacity:    40,
			Schedule:    "2:00 PM - 5:00 PM",
			Instructor:  "Prof. Johnson",
			CreatedDate: "2024-01-01",
		},
		{
			Name:        "Weekend Batch C",
			Capacity:    30,
			Schedule:    "10:00 AM - 1:00 PM (Sat-Sun)",
			Instructor:  "Prof. Williams",
			CreatedDate: "2024-01-15",
		},
	}

	seedStudents = []seedStudent{
		{
			Student: student.Student{
				Name:           "John Doe",
				Email:          "john@example.com",
				Mobile:         "9876543210",
				ParentMobile:   "9876543211",
				Address:        "123 Main St",
				EnrollmentDate: "2024-01-15",
				TotalFees:      1000,
				FeesPaid:       600,
			},
			batchIdx: 0,
			marks: []seedMark{
				{date: "2024-01-01", present: true},
				{date: "2024-01-02", present: true},
				{date: "2024-01-03", present: false},
			},
		},
		{
			Student: student.Student{
				Name:           "Jane Smith",
				Email:          "jane@example.com",
				Mobile:         "9876543212",
				ParentMobile:   "9876543213",
				Address:        "456 Oak Ave",
				EnrollmentDate: "2024-01-20",
				TotalFees:      1000,
				FeesPaid:       1000,
			},
			batchIdx: 0,
			marks: []seedMark{
				{date: "2024-01-01", present: true},
				{date: "2024-01-02", present: false},
				{date: "2024-01-03", present: true},
			},
		},
	}
)

// seed loads a small demo dataset: three batches, two students in the first
// one, and three days of attendance marks each.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	now := time.Now().UTC()

	batches := make([]batch.Batch, 0, len(seedBatches))
	for _, bch := range seedBatches {
		bch.CreatedAt = now
		bch.UpdatedAt = now
		saved, err := cli.bchRepo.CreateBatch(ctx, bch)
		if err != nil {
			return err
		}
		batches = append(batches, saved)
	}

	var records []attendance.Record
	for _, std := range seedStudents {
		std.BatchID = batches[std.batchIdx].ID
		std.CreatedAt = now
		std.UpdatedAt = now
		saved, err := cli.stdRepo.CreateStudent(ctx, std.Student)
		if err != nil {
			return err
		}
		for _, mark := range std.marks {
			records = append(records, attendance.Record{
				StudentID: saved.ID,
				Date:      mark.date,
				Present:   mark.present,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}

	if err := cli.attRepo.UpsertRecords(ctx, records); err != nil {
		return err
	}

	fmt.Printf("seeded %d batches, %d students, %d attendance records\n",
		len(seedBatches), len(seedStudents), len(records))
	return nil
}
