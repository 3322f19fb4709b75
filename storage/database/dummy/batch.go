package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/batch"
)

type batchRepository struct {
	db *DB
}

var _ batch.Repository = (*batchRepository)(nil) // interface compliance check

func NewBatchRepository(db *DB) batch.Repository {
	return &batchRepository{db: db}
}

func (repo *batchRepository) query() []batch.Batch {
	batches := make([]batch.Batch, 0, len(repo.db.batch.table))
	for _, b := range repo.db.batch.table {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].Name < batches[j].Name })
	return batches
}

func (repo *batchRepository) CreateBatch(ctx context.Context, bch batch.Batch) (batch.Batch, error) {
	repo.db.batch.Lock()
	defer repo.db.batch.Unlock()

	bch.ID = uuid.New().String()
	repo.db.batch.table[bch.ID] = &bch
	return bch, nil
}

func (repo *batchRepository) QueryBatches(ctx context.Context) ([]batch.Batch, error) {
	repo.db.batch.RLock()
	defer repo.db.batch.RUnlock()
	return repo.query(), nil
}

func (repo *batchRepository) QueryBatchesWithCount(ctx context.Context) ([]batch.WithCount, error) {
	repo.db.batch.RLock()
	defer repo.db.batch.RUnlock()
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	counts := make(map[string]int)
	for _, std := range repo.db.student.table {
		if std.BatchID != "" {
			counts[std.BatchID]++
		}
	}

	batches := repo.query()
	withCount := make([]batch.WithCount, 0, len(batches))
	for _, bch := range batches {
		withCount = append(withCount, batch.WithCount{Batch: bch, CurrentStudents: counts[bch.ID]})
	}
	return withCount, nil
}

func (repo *batchRepository) GetBatchByID(ctx context.Context, id string) (batch.Batch, error) {
	repo.db.batch.RLock()
	defer repo.db.batch.RUnlock()

	if bch, ok := repo.db.batch.table[id]; ok {
		return *bch, nil
	}
	return batch.Batch{}, batch.ErrNotFound
}

func (repo *batchRepository) UpdateBatch(ctx context.Context, bch batch.Batch) (batch.Batch, error) {
	repo.db.batch.Lock()
	defer repo.db.batch.Unlock()

	orig, ok := repo.db.batch.table[bch.ID]
	if !ok {
		return batch.Batch{}, batch.ErrNotFound
	}
	bch.CreatedDate = orig.CreatedDate
	bch.CreatedAt = orig.CreatedAt
	repo.db.batch.table[bch.ID] = &bch
	return bch, nil
}

func (repo *batchRepository) DeleteBatchesByID(ctx context.Context, ids ...string) error {
	repo.db.batch.Lock()
	defer repo.db.batch.Unlock()
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	for _, id := range ids {
		delete(repo.db.batch.table, id)
		for _, std := range repo.db.student.table {
			if std.BatchID == id {
				std.BatchID = "" // unassign, keep the student and their history
			}
		}
	}
	return nil
}

func (repo *batchRepository) CountBatches(ctx context.Context) (int, error) {
	repo.db.batch.RLock()
	defer repo.db.batch.RUnlock()
	return len(repo.db.batch.table), nil
}
