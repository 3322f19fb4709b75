package attendance

import (
	"context"
	"time"

	"github.com/trezcool/mahudhurio/core/student"
)

type (
	Repository interface {
		// QueryRecords returns every attendance record, newest date first.
		QueryRecords(ctx context.Context) ([]Record, error)
		// QueryRecordsByDateAndBatch returns the records of date whose student
		// is assigned to batchID.
		QueryRecordsByDateAndBatch(ctx context.Context, date, batchID string) ([]Record, error)
		// UpsertRecords writes all records in one call, keyed on
		// (student_id, date): existing pairs are overwritten, missing ones
		// inserted. The store's transactional upsert makes the whole write
		// atomic; no partial application on failure.
		UpsertRecords(ctx context.Context, records []Record) error
		// CountPresentOn counts the students marked present on date.
		CountPresentOn(ctx context.Context, date string) (int, error)
		// QueryMonthMarks returns the present flags of every record whose date
		// falls within month (YYYY-MM).
		QueryMonthMarks(ctx context.Context, month string) ([]bool, error)
	}

	// StudentDirectory is the slice of student storage the attendance service
	// needs: batch-filtered, name-sorted listings.
	StudentDirectory interface {
		QueryStudents(ctx context.Context, filter *student.QueryFilter) ([]student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
	}
)

func NewService(repo Repository, students StudentDirectory) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) Records(ctx context.Context) ([]Record, error) {
	return svc.repo.QueryRecords(ctx)
}

// Sheet loads the attendance sheet for one batch and date, marks pre-filled
// from existing records. Students with no record stay unmarked (absent).
func (svc *Service) Sheet(ctx context.Context, batchID, date string) (Sheet, error) {
	sheet := Sheet{BatchID: batchID, Date: date, Marks: make(map[string]bool)}
	if batchID == "" {
		return sheet, nil
	}

	students, err := svc.students.QueryStudents(ctx, &student.QueryFilter{BatchID: batchID})
	if err != nil {
		return Sheet{}, err
	}
	sheet.Students = students

	records, err := svc.repo.QueryRecordsByDateAndBatch(ctx, date, batchID)
	if err != nil {
		return Sheet{}, err
	}
	for _, rec := range records {
		sheet.Marks[rec.StudentID] = rec.Present
	}
	return sheet, nil
}

// SaveSheet translates a full day's sheet for one batch into a single upsert:
// one record per batch student, unmarked students absent. Resubmitting the
// same sheet leaves exactly one record per (student, date) pair.
func (svc *Service) SaveSheet(ctx context.Context, in SheetInput) error {
	students, err := svc.students.QueryStudents(ctx, &student.QueryFilter{BatchID: in.BatchID})
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return nil
	}

	now := time.Now().UTC()
	records := make([]Record, 0, len(students))
	for _, std := range students {
		records = append(records, Record{
			StudentID: std.ID,
			Date:      in.Date,
			Present:   in.Marks[std.ID],
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return svc.repo.UpsertRecords(ctx, records)
}

// Report computes the monthly report and its summary for one batch.
func (svc *Service) Report(ctx context.Context, batchID, month string) ([]ReportRow, ReportSummary, error) {
	students, err := svc.students.QueryStudents(ctx, nil)
	if err != nil {
		return nil, ReportSummary{}, err
	}
	records, err := svc.repo.QueryRecords(ctx)
	if err != nil {
		return nil, ReportSummary{}, err
	}
	rows := MonthlyReport(students, records, batchID, month)
	return rows, Summarize(rows), nil
}
