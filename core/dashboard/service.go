package dashboard

import (
	"context"
	"math"

	"github.com/trezcool/mahudhurio/core/student"
)

// Stats is the dashboard rollup over all entities.
type Stats struct {
	TotalStudents   int     `json:"total_students"`
	TotalBatches    int     `json:"total_batches"`
	TodayAttendance int     `json:"today_attendance"` // students present today
	AttendanceRate  int     `json:"attendance_rate"`  // integer % over the current month's records
	TotalFees       float64 `json:"total_fees"`
	TotalFeesPaid   float64 `json:"total_fees_paid"`
	TotalFeesDue    float64 `json:"total_fees_due"` // store-computed fees_due, summed
}

type (
	StudentStats interface {
		CountStudents(ctx context.Context) (int, error)
		SumStudentFees(ctx context.Context) (student.FeeTotals, error)
	}

	BatchStats interface {
		CountBatches(ctx context.Context) (int, error)
	}

	AttendanceStats interface {
		CountPresentOn(ctx context.Context, date string) (int, error)
		QueryMonthMarks(ctx context.Context, month string) ([]bool, error)
	}

	Service struct {
		students   StudentStats
		batches    BatchStats
		attendance AttendanceStats
	}
)

func NewService(students StudentStats, batches BatchStats, attendance AttendanceStats) *Service {
	return &Service{students: students, batches: batches, attendance: attendance}
}

// Stats computes the dashboard for the given day (YYYY-MM-DD) and month
// (YYYY-MM). Empty collections never error; every ratio is guarded.
func (svc *Service) Stats(ctx context.Context, today, month string) (Stats, error) {
	var stats Stats
	var err error

	if stats.TotalStudents, err = svc.students.CountStudents(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TotalBatches, err = svc.batches.CountBatches(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TodayAttendance, err = svc.attendance.CountPresentOn(ctx, today); err != nil {
		return Stats{}, err
	}

	marks, err := svc.attendance.QueryMonthMarks(ctx, month)
	if err != nil {
		return Stats{}, err
	}
	if len(marks) > 0 {
		var present int
		for _, p := range marks {
			if p {
				present++
			}
		}
		stats.AttendanceRate = int(math.Round(float64(present) / float64(len(marks)) * 100))
	}

	fees, err := svc.students.SumStudentFees(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalFees = fees.Total
	stats.TotalFeesPaid = fees.Paid
	stats.TotalFeesDue = fees.Due

	return stats, nil
}
