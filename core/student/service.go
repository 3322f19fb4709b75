package student

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/mahudhurio/core"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// QueryStudents applies AND operation on available QueryFilter fields;
		// a nil filter returns everything. Results are sorted by name.
		// QueryFilter.Search does a case-insensitive match on one of
		// Student.Name, Student.Email or Student.Mobile.
		QueryStudents(ctx context.Context, filter *QueryFilter) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		// DeleteStudentsByID also drops the students' attendance records.
		DeleteStudentsByID(ctx context.Context, ids ...string) error
		CountStudents(ctx context.Context) (int, error)
		// SumStudentFees sums total_fees, fees_paid and the store-computed
		// fees_due over all students.
		SumStudentFees(ctx context.Context) (FeeTotals, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	enrolled := ns.EnrollmentDate
	if enrolled == "" {
		enrolled = now.Format(core.DateFormat)
	}
	std := Student{
		Name:           ns.Name,
		Email:          ns.Email,
		Mobile:         ns.Mobile,
		ParentMobile:   ns.ParentMobile,
		Address:        ns.Address,
		BatchID:        ns.BatchID,
		EnrollmentDate: enrolled,
		TotalFees:      ns.TotalFees,
		FeesPaid:       ns.FeesPaid,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Student, error) {
	if filter != nil {
		filter.Clean()
	}
	return svc.repo.QueryStudents(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std := Student{
		ID:             id,
		Name:           us.Name,
		Email:          us.Email,
		Mobile:         us.Mobile,
		ParentMobile:   us.ParentMobile,
		Address:        us.Address,
		BatchID:        us.BatchID,
		EnrollmentDate: us.EnrollmentDate,
		TotalFees:      us.TotalFees,
		FeesPaid:       us.FeesPaid,
		UpdatedAt:      time.Now().UTC(),
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
