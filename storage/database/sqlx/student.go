package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core/student"
)

// studentRow mirrors the students table; dates are selected as text.
type studentRow struct {
	ID             string      `db:"id"`
	Name           string      `db:"name"`
	Email          string      `db:"email"`
	Mobile         string      `db:"mobile"`
	ParentMobile   string      `db:"parent_mobile"`
	Address        string      `db:"address"`
	BatchID        null.String `db:"batch_id"`
	EnrollmentDate string      `db:"enrollment_date"`
	TotalFees      float64     `db:"total_fees"`
	FeesPaid       float64     `db:"fees_paid"`
	FeesDue        float64     `db:"fees_due"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

const studentColumns = `id, name, email, mobile, parent_mobile, address, batch_id,
	to_char(enrollment_date, 'YYYY-MM-DD') AS enrollment_date,
	total_fees, fees_paid, fees_due, created_at, updated_at`

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) row(std student.Student) studentRow {
	return studentRow{
		ID:             std.ID,
		Name:           std.Name,
		Email:          std.Email,
		Mobile:         std.Mobile,
		ParentMobile:   std.ParentMobile,
		Address:        std.Address,
		BatchID:        null.NewString(std.BatchID, std.BatchID != ""),
		EnrollmentDate: std.EnrollmentDate,
		TotalFees:      std.TotalFees,
		FeesPaid:       std.FeesPaid,
		CreatedAt:      std.CreatedAt.UTC(),
		UpdatedAt:      std.UpdatedAt.UTC(),
	}
}

func (repo studentRepository) unrow(row studentRow) student.Student {
	return student.Student{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		Mobile:         row.Mobile,
		ParentMobile:   row.ParentMobile,
		Address:        row.Address,
		BatchID:        row.BatchID.String,
		EnrollmentDate: row.EnrollmentDate,
		TotalFees:      row.TotalFees,
		FeesPaid:       row.FeesPaid,
		FeesDue:        row.FeesDue,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func (repo studentRepository) unrowSlice(rows []studentRow) []student.Student {
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, repo.unrow(row))
	}
	return students
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	std.ID = uuid.New().String()
	row := repo.row(std)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO students (id, name, email, mobile, parent_mobile, address, batch_id,
			enrollment_date, total_fees, fees_paid, created_at, updated_at)
		VALUES (:id, :name, :email, :mobile, :parent_mobile, :address, :batch_id,
			CAST(:enrollment_date AS date), :total_fees, :fees_paid, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return repo.GetStudentByID(ctx, std.ID)
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter) ([]student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	var conds []string
	var args []interface{}

	if filter != nil {
		if filter.Search != "" {
			args = append(args, "%"+filter.Search+"%")
			conds = append(conds, "(name ILIKE $1 OR email ILIKE $1 OR mobile ILIKE $1)")
		}
		if filter.BatchID != "" {
			args = append(args, filter.BatchID)
			conds = append(conds, "batch_id = $"+itoa(len(args)))
		}
		if filter.Assigned != nil {
			if *filter.Assigned {
				conds = append(conds, "batch_id IS NOT NULL")
			} else {
				conds = append(conds, "batch_id IS NULL")
			}
		}
	}
	query += whereClause(conds) + " ORDER BY name"

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return repo.unrowSlice(rows), nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student")
	}
	return repo.unrow(row), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	row := repo.row(std)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE students
		SET name = :name, email = :email, mobile = :mobile, parent_mobile = :parent_mobile,
			address = :address, batch_id = :batch_id, enrollment_date = CAST(:enrollment_date AS date),
			total_fees = :total_fees, fees_paid = :fees_paid, updated_at = :updated_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudentByID(ctx, std.ID)
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM students WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting students")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

func (repo studentRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}

func (repo studentRepository) SumStudentFees(ctx context.Context) (student.FeeTotals, error) {
	var totals student.FeeTotals
	err := repo.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_fees), 0), COALESCE(SUM(fees_paid), 0), COALESCE(SUM(fees_due), 0)
		FROM students`,
	).Scan(&totals.Total, &totals.Paid, &totals.Due)
	if err != nil {
		return student.FeeTotals{}, errors.Wrap(err, "summing student fees")
	}
	return totals, nil
}
