package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type recordRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Date      string    `db:"date"`
	Present   bool      `db:"present"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const recordColumns = `id, student_id, to_char(date, 'YYYY-MM-DD') AS date, present, created_at, updated_at`

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) unrowSlice(rows []recordRow) []attendance.Record {
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, attendance.Record{
			ID:        row.ID,
			StudentID: row.StudentID,
			Date:      row.Date,
			Present:   row.Present,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return records
}

func (repo attendanceRepository) QueryRecords(ctx context.Context) ([]attendance.Record, error) {
	var rows []recordRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT `+recordColumns+` FROM attendance_records ORDER BY date DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}
	return repo.unrowSlice(rows), nil
}

func (repo attendanceRepository) QueryRecordsByDateAndBatch(ctx context.Context, date, batchID string) ([]attendance.Record, error) {
	var rows []recordRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT ar.id, ar.student_id, to_char(ar.date, 'YYYY-MM-DD') AS date, ar.present,
			ar.created_at, ar.updated_at
		FROM attendance_records ar
		JOIN students s ON s.id = ar.student_id
		WHERE ar.date = $1::date AND s.batch_id = $2`,
		date, batchID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance by date and batch")
	}
	return repo.unrowSlice(rows), nil
}

// UpsertRecords writes a whole batch-day sheet in one statement; the
// (student_id, date) unique constraint turns re-submissions into updates.
func (repo attendanceRepository) UpsertRecords(ctx context.Context, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]recordRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, recordRow{
			ID:        uuid.New().String(),
			StudentID: rec.StudentID,
			Date:      rec.Date,
			Present:   rec.Present,
			CreatedAt: rec.CreatedAt.UTC(),
			UpdatedAt: rec.UpdatedAt.UTC(),
		})
	}

	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO attendance_records (id, student_id, date, present, created_at, updated_at)
		VALUES (:id, :student_id, CAST(:date AS date), :present, :created_at, :updated_at)
		ON CONFLICT (student_id, date)
		DO UPDATE SET present = EXCLUDED.present, updated_at = EXCLUDED.updated_at`,
		rows,
	)
	if err != nil {
		return errors.Wrap(err, "upserting attendance records")
	}
	return nil
}

func (repo attendanceRepository) CountPresentOn(ctx context.Context, date string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM attendance_records WHERE date = $1::date AND present`, date)
	if err != nil {
		return 0, errors.Wrap(err, "counting present students")
	}
	return count, nil
}

func (repo attendanceRepository) QueryMonthMarks(ctx context.Context, month string) ([]bool, error) {
	var marks []bool
	err := repo.db.SelectContext(ctx, &marks, `
		SELECT present FROM attendance_records
		WHERE date >= ($1 || '-01')::date
		  AND date < (($1 || '-01')::date + INTERVAL '1 month')`,
		month,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying month attendance")
	}
	return marks, nil
}
