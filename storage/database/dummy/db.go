package dummydb

import (
	"sync"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	"github.com/trezcool/mahudhurio/core/student"
)

type (
	// DB holds the in-memory tables. Operations needing more than one table
	// lock them in declaration order: batch, student, attendance.
	DB struct {
		batch      *batchTable
		student    *studentTable
		attendance *attendanceTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	batchTable struct {
		sync.RWMutex
		table map[string]*batch.Batch
	}

	// attendanceTable keys records on (student_id, date) so re-marking a day
	// overwrites in place, same as the SQL unique constraint.
	attendanceTable struct {
		sync.RWMutex
		table map[recordKey]*attendance.Record
	}

	recordKey struct {
		studentID string
		date      string
	}
)

func Open() (*DB, error) {
	db := &DB{
		batch:      &batchTable{table: make(map[string]*batch.Batch)},
		student:    &studentTable{table: make(map[string]*student.Student)},
		attendance: &attendanceTable{table: make(map[recordKey]*attendance.Record)},
	}
	return db, nil
}
