package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) query() []attendance.Record {
	records := make([]attendance.Record, 0, len(repo.db.attendance.table))
	for _, rec := range repo.db.attendance.table {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	return records
}

func (repo *attendanceRepository) QueryRecords(ctx context.Context) ([]attendance.Record, error) {
	repo.db.attendance.RLock()
	defer repo.db.attendance.RUnlock()
	return repo.query(), nil
}

func (repo *attendanceRepository) QueryRecordsByDateAndBatch(ctx context.Context, date, batchID string) ([]attendance.Record, error) {
	// lock order: student before attendance, like DeleteStudentsByID
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()
	repo.db.attendance.RLock()
	defer repo.db.attendance.RUnlock()

	var records []attendance.Record
	for _, rec := range repo.db.attendance.table {
		if rec.Date != date {
			continue
		}
		if std, ok := repo.db.student.table[rec.StudentID]; ok && std.BatchID == batchID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *attendanceRepository) UpsertRecords(ctx context.Context, records []attendance.Record) error {
	repo.db.attendance.Lock()
	defer repo.db.attendance.Unlock()

	for _, rec := range records {
		key := recordKey{studentID: rec.StudentID, date: rec.Date}
		if orig, ok := repo.db.attendance.table[key]; ok {
			orig.Present = rec.Present
			orig.UpdatedAt = rec.UpdatedAt
			continue
		}
		rec := rec
		rec.ID = uuid.New().String()
		repo.db.attendance.table[key] = &rec
	}
	return nil
}

func (repo *attendanceRepository) CountPresentOn(ctx context.Context, date string) (int, error) {
	repo.db.attendance.RLock()
	defer repo.db.attendance.RUnlock()

	var count int
	for _, rec := range repo.db.attendance.table {
		if rec.Date == date && rec.Present {
			count++
		}
	}
	return count, nil
}

func (repo *attendanceRepository) QueryMonthMarks(ctx context.Context, month string) ([]bool, error) {
	repo.db.attendance.RLock()
	defer repo.db.attendance.RUnlock()

	var marks []bool
	for _, rec := range repo.db.attendance.table {
		if strings.HasPrefix(rec.Date, month+"-") {
			marks = append(marks, rec.Present)
		}
	}
	return marks, nil
}
