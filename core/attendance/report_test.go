package attendance

import (
	"reflect"
	"testing"

	"github.com/trezcool/mahudhurio/core/student"
)

func TestClassifyRate(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want RateStatus
	}{
		{name: "100", pct: 100, want: RateExcellent},
		{name: "exactly 90", pct: 90, want: RateExcellent},
		{name: "just under 90", pct: 89.99, want: RateGood},
		{name: "exactly 75", pct: 75, want: RateGood},
		{name: "just under 75", pct: 74.99, want: RateAverage},
		{name: "exactly 60", pct: 60, want: RateAverage},
		{name: "just under 60", pct: 59.99, want: RatePoor},
		{name: "zero", pct: 0, want: RatePoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRate(tt.pct); got != tt.want {
				t.Errorf("ClassifyRate(%v) = %v, want %v", tt.pct, got, tt.want)
			}
		})
	}
}

func TestMonthlyReport(t *testing.T) {
	students := []student.Student{
		{ID: "s1", Name: "Jane", BatchID: "b1"},
		{ID: "s2", Name: "John", BatchID: "b1"},
		{ID: "s3", Name: "Mark", BatchID: "b2"},
	}
	records := []Record{
		{StudentID: "s1", Date: "2024-03-01", Present: true},
		{StudentID: "s1", Date: "2024-03-02", Present: false},
		{StudentID: "s2", Date: "2024-03-01", Present: true},
		{StudentID: "s2", Date: "2024-03-02", Present: true},
		{StudentID: "s2", Date: "2024-03-03", Present: true},
		{StudentID: "s3", Date: "2024-03-01", Present: true},  // other batch
		{StudentID: "s1", Date: "2024-04-01", Present: false}, // other month
	}

	t.Run("computes per-student stats over the month", func(t *testing.T) {
		rows := MonthlyReport(students, records, "b1", "2024-03")
		want := []ReportRow{
			{StudentID: "s1", StudentName: "Jane", TotalDays: 2, PresentDays: 1, AbsentDays: 1, Percentage: 50},
			{StudentID: "s2", StudentName: "John", TotalDays: 3, PresentDays: 3, AbsentDays: 0, Percentage: 100},
		}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("MonthlyReport() = %+v, want %+v", rows, want)
		}
	})

	t.Run("no records in month yields zero percentage", func(t *testing.T) {
		rows := MonthlyReport(students, records, "b1", "2024-05")
		for _, row := range rows {
			if row.TotalDays != 0 || row.Percentage != 0 {
				t.Errorf("row %+v, want zero days and percentage", row)
			}
		}
	})

	t.Run("empty batch yields no rows", func(t *testing.T) {
		if rows := MonthlyReport(students, records, "b9", "2024-03"); rows != nil {
			t.Errorf("MonthlyReport() = %+v, want nil", rows)
		}
	})

	t.Run("no batch selected yields no rows", func(t *testing.T) {
		if rows := MonthlyReport(students, records, "", "2024-03"); rows != nil {
			t.Errorf("MonthlyReport() = %+v, want nil", rows)
		}
	})

	t.Run("percentage rounds to 2 decimals", func(t *testing.T) {
		recs := []Record{
			{StudentID: "s1", Date: "2024-03-01", Present: true},
			{StudentID: "s1", Date: "2024-03-02", Present: true},
			{StudentID: "s1", Date: "2024-03-03", Present: false},
		}
		rows := MonthlyReport(students[:1], recs, "b1", "2024-03")
		if want := 66.67; rows[0].Percentage != want {
			t.Errorf("Percentage = %v, want %v", rows[0].Percentage, want)
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty report", func(t *testing.T) {
		sum := Summarize(nil)
		if !reflect.DeepEqual(sum, ReportSummary{}) {
			t.Errorf("Summarize(nil) = %+v, want zero value", sum)
		}
	})

	t.Run("buckets and averages", func(t *testing.T) {
		rows := []ReportRow{
			{Percentage: 95},
			{Percentage: 80},
			{Percentage: 65},
			{Percentage: 20},
		}
		want := ReportSummary{
			TotalStudents: 4,
			AverageRate:   65, // round(260 / 4)
			Excellent:     1,
			Good:          1,
			Average:       1,
			Poor:          1,
		}
		if sum := Summarize(rows); !reflect.DeepEqual(sum, want) {
			t.Errorf("Summarize() = %+v, want %+v", sum, want)
		}
	})

	t.Run("average rounds to nearest int", func(t *testing.T) {
		rows := []ReportRow{{Percentage: 50}, {Percentage: 66.67}, {Percentage: 66.67}}
		if sum := Summarize(rows); sum.AverageRate != 61 {
			t.Errorf("AverageRate = %v, want 61", sum.AverageRate)
		}
	})
}
