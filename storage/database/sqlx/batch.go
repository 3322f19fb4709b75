package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/batch"
)

type batchRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Capacity    int       `db:"capacity"`
	Schedule    string    `db:"schedule"`
	Instructor  string    `db:"instructor"`
	CreatedDate string    `db:"created_date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	CurrentStudents int `db:"current_students"` // derived; only set by QueryBatchesWithCount
}

const batchColumns = `id, name, capacity, schedule, instructor,
	to_char(created_date, 'YYYY-MM-DD') AS created_date, created_at, updated_at`

type batchRepository struct {
	db *sqlx.DB
}

var _ batch.Repository = (*batchRepository)(nil) // interface compliance check

func NewBatchRepository(db *sqlx.DB) *batchRepository {
	return &batchRepository{db: db}
}

func (repo batchRepository) unrow(row batchRow) batch.Batch {
	return batch.Batch{
		ID:          row.ID,
		Name:        row.Name,
		Capacity:    row.Capacity,
		Schedule:    row.Schedule,
		Instructor:  row.Instructor,
		CreatedDate: row.CreatedDate,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to batch.ErrNotFound
func (repo batchRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return batch.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo batchRepository) CreateBatch(ctx context.Context, bch batch.Batch) (batch.Batch, error) {
	bch.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO batches (id, name, capacity, schedule, instructor, created_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)`,
		bch.ID, bch.Name, bch.Capacity, bch.Schedule, bch.Instructor, bch.CreatedDate,
		bch.CreatedAt.UTC(), bch.UpdatedAt.UTC(),
	)
	if err != nil {
		return batch.Batch{}, errors.Wrap(err, "inserting batch")
	}
	return repo.GetBatchByID(ctx, bch.ID)
}

func (repo batchRepository) QueryBatches(ctx context.Context) ([]batch.Batch, error) {
	var rows []batchRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT `+batchColumns+` FROM batches ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying batches")
	}
	batches := make([]batch.Batch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, repo.unrow(row))
	}
	return batches, nil
}

func (repo batchRepository) QueryBatchesWithCount(ctx context.Context) ([]batch.WithCount, error) {
	var rows []batchRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT b.id, b.name, b.capacity, b.schedule, b.instructor,
			to_char(b.created_date, 'YYYY-MM-DD') AS created_date, b.created_at, b.updated_at,
			COUNT(s.id) AS current_students
		FROM batches b
		LEFT JOIN students s ON s.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.name`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying batches with counts")
	}
	batches := make([]batch.WithCount, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, batch.WithCount{Batch: repo.unrow(row), CurrentStudents: row.CurrentStudents})
	}
	return batches, nil
}

func (repo batchRepository) GetBatchByID(ctx context.Context, id string) (batch.Batch, error) {
	var row batchRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
	if err != nil {
		return batch.Batch{}, repo.trapNoRowsErr(err, "getting batch")
	}
	return repo.unrow(row), nil
}

func (repo batchRepository) UpdateBatch(ctx context.Context, bch batch.Batch) (batch.Batch, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE batches
		SET name = $2, capacity = $3, schedule = $4, instructor = $5, updated_at = $6
		WHERE id = $1`,
		bch.ID, bch.Name, bch.Capacity, bch.Schedule, bch.Instructor, bch.UpdatedAt.UTC(),
	)
	if err != nil {
		return batch.Batch{}, errors.Wrap(err, "updating batch")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return batch.Batch{}, batch.ErrNotFound
	}
	return repo.GetBatchByID(ctx, bch.ID)
}

// DeleteBatchesByID deletes batches only; students keep existing thanks to the
// ON DELETE SET NULL foreign key, they just lose their batch assignment.
func (repo batchRepository) DeleteBatchesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM batches WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting batches")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting batches")
	}
	return nil
}

func (repo batchRepository) CountBatches(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM batches`); err != nil {
		return 0, errors.Wrap(err, "counting batches")
	}
	return count, nil
}
