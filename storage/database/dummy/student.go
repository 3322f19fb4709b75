package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.student.table))
	for _, s := range repo.db.student.table {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	std.ID = uuid.New().String()
	std.FeesDue = std.TotalFees - std.FeesPaid
	repo.db.student.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter) ([]student.Student, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	students := repo.query()
	if filter == nil || filter.IsEmpty() {
		return students, nil
	}

	matched := make([]student.Student, 0, len(students))
	search := strings.ToLower(filter.Search)
	for _, std := range students {
		if search != "" &&
			!strings.Contains(strings.ToLower(std.Name), search) &&
			!strings.Contains(strings.ToLower(std.Email), search) &&
			!strings.Contains(strings.ToLower(std.Mobile), search) {
			continue
		}
		if filter.BatchID != "" && std.BatchID != filter.BatchID {
			continue
		}
		if filter.Assigned != nil && *filter.Assigned != (std.BatchID != "") {
			continue
		}
		matched = append(matched, std)
	}
	return matched, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	if std, ok := repo.db.student.table[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	orig, ok := repo.db.student.table[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	std.CreatedAt = orig.CreatedAt
	std.FeesDue = std.TotalFees - std.FeesPaid
	repo.db.student.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()
	repo.db.attendance.Lock()
	defer repo.db.attendance.Unlock()

	for _, id := range ids {
		delete(repo.db.student.table, id)
		for key := range repo.db.attendance.table {
			if key.studentID == id {
				delete(repo.db.attendance.table, key)
			}
		}
	}
	return nil
}

func (repo *studentRepository) CountStudents(ctx context.Context) (int, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()
	return len(repo.db.student.table), nil
}

func (repo *studentRepository) SumStudentFees(ctx context.Context) (student.FeeTotals, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	var totals student.FeeTotals
	for _, std := range repo.db.student.table {
		totals.Total += std.TotalFees
		totals.Paid += std.FeesPaid
		totals.Due += std.FeesDue
	}
	return totals, nil
}
