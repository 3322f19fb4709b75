package attendance

import (
	"math"
	"strings"

	"github.com/trezcool/mahudhurio/core/student"
)

// ReportRow is one student's attendance statistics for one calendar month.
// Never persisted; recomputing over the same records yields identical rows.
type ReportRow struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	TotalDays   int     `json:"total_days"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	Percentage  float64 `json:"attendance_percentage"` // 2 decimals; 0 when no records
}

func (r ReportRow) Status() RateStatus {
	return ClassifyRate(r.Percentage)
}

type RateStatus string

const (
	RateExcellent RateStatus = "Excellent" // >= 90%
	RateGood      RateStatus = "Good"      // 75-89%
	RateAverage   RateStatus = "Average"   // 60-74%
	RatePoor      RateStatus = "Poor"      // < 60%
)

// ClassifyRate buckets an attendance percentage.
func ClassifyRate(pct float64) RateStatus {
	switch {
	case pct >= 90:
		return RateExcellent
	case pct >= 75:
		return RateGood
	case pct >= 60:
		return RateAverage
	default:
		return RatePoor
	}
}

// MonthlyReport computes per-student statistics for the students of batchID
// over the records of month (YYYY-MM). Row order follows the students slice
// (name-sorted when it comes from the store). Records outside the month, or
// belonging to other students, are ignored.
func MonthlyReport(students []student.Student, records []Record, batchID, month string) []ReportRow {
	batchStudents := student.FilterByBatch(students, batchID)
	if len(batchStudents) == 0 {
		return nil
	}

	monthRecords := make([]Record, 0, len(records))
	for _, rec := range records {
		if strings.HasPrefix(rec.Date, month) {
			monthRecords = append(monthRecords, rec)
		}
	}

	rows := make([]ReportRow, 0, len(batchStudents))
	for _, std := range batchStudents {
		var totalDays, presentDays int
		for _, rec := range monthRecords {
			if rec.StudentID != std.ID {
				continue
			}
			totalDays++
			if rec.Present {
				presentDays++
			}
		}

		var pct float64
		if totalDays > 0 {
			pct = round2(float64(presentDays) / float64(totalDays) * 100)
		}
		rows = append(rows, ReportRow{
			StudentID:   std.ID,
			StudentName: std.Name,
			TotalDays:   totalDays,
			PresentDays: presentDays,
			AbsentDays:  totalDays - presentDays,
			Percentage:  pct,
		})
	}
	return rows
}

// ReportSummary aggregates a monthly report for display and export.
type ReportSummary struct {
	TotalStudents int `json:"total_students"`
	// AverageRate is the integer-rounded mean of the rows' percentages.
	AverageRate int `json:"average_rate"`
	Excellent   int `json:"excellent"`
	Good        int `json:"good"`
	Average     int `json:"average"`
	Poor        int `json:"poor"`
}

func Summarize(rows []ReportRow) ReportSummary {
	sum := ReportSummary{TotalStudents: len(rows)}
	if len(rows) == 0 {
		return sum
	}

	var total float64
	for _, row := range rows {
		total += row.Percentage
		switch row.Status() {
		case RateExcellent:
			sum.Excellent++
		case RateGood:
			sum.Good++
		case RateAverage:
			sum.Average++
		case RatePoor:
			sum.Poor++
		}
	}
	sum.AverageRate = int(math.Round(total / float64(len(rows))))
	return sum
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
