package batch

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/mahudhurio/core"
)

var ErrNotFound = errors.New("batch not found")

type (
	Repository interface {
		CreateBatch(ctx context.Context, bch Batch) (Batch, error)
		// QueryBatches returns all batches sorted by name.
		QueryBatches(ctx context.Context) ([]Batch, error)
		// QueryBatchesWithCount returns all batches sorted by name, each with
		// its store-computed count of assigned students.
		QueryBatchesWithCount(ctx context.Context) ([]WithCount, error)
		GetBatchByID(ctx context.Context, id string) (Batch, error)
		UpdateBatch(ctx context.Context, bch Batch) (Batch, error)
		// DeleteBatchesByID unassigns the batches' students; it never deletes
		// them, and their attendance history is untouched.
		DeleteBatchesByID(ctx context.Context, ids ...string) error
		CountBatches(ctx context.Context) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nb NewBatch) (Batch, error) {
	now := time.Now().UTC()
	created := nb.CreatedDate
	if created == "" {
		created = now.Format(core.DateFormat)
	}
	bch := Batch{
		Name:        nb.Name,
		Capacity:    nb.Capacity,
		Schedule:    nb.Schedule,
		Instructor:  nb.Instructor,
		CreatedDate: created,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateBatch(ctx, bch)
}

func (svc *Service) Query(ctx context.Context) ([]Batch, error) {
	return svc.repo.QueryBatches(ctx)
}

func (svc *Service) QueryWithCount(ctx context.Context) ([]WithCount, error) {
	return svc.repo.QueryBatchesWithCount(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Batch, error) {
	return svc.repo.GetBatchByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ub UpdateBatch) (Batch, error) {
	bch := Batch{
		ID:         id,
		Name:       ub.Name,
		Capacity:   ub.Capacity,
		Schedule:   ub.Schedule,
		Instructor: ub.Instructor,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateBatch(ctx, bch)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteBatchesByID(ctx, ids...)
}
