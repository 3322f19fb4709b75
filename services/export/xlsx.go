package exportsvc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

const (
	sheetName       = "Attendance Report"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportExporter renders monthly attendance reports as xlsx workbooks.
type ReportExporter struct {
	appName string
}

func NewReportExporter(conf *core.Config) *ReportExporter {
	return &ReportExporter{appName: conf.AppName}
}

// Export builds a single-sheet workbook: a title block, one row per student,
// then a summary block. The result is ready to stream as a download or to
// attach to an email.
func (e *ReportExporter) Export(
	batchName, month string,
	rows []attendance.ReportRow,
	sum attendance.ReportSummary,
) (core.Attachment, error) {
	now := time.Now().UTC()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	monthYear := month
	if t, err := time.Parse(core.MonthFormat, month); err == nil {
		monthYear = t.Format("January 2006")
	}

	lines := [][]interface{}{
		{strings.ToUpper(e.appName) + " ATTENDANCE MANAGEMENT SYSTEM"},
		{fmt.Sprintf("Attendance Report - %s", batchName)},
		{fmt.Sprintf("Month: %s", monthYear)},
		{fmt.Sprintf("Generated on: %s", now.Format(core.DateFormat))},
		{},
		{"Student Name", "Total Days", "Present Days", "Absent Days", "Attendance %"},
	}
	for _, row := range rows {
		lines = append(lines, []interface{}{
			row.StudentName, row.TotalDays, row.PresentDays, row.AbsentDays, formatPct(row.Percentage),
		})
	}
	lines = append(lines,
		[]interface{}{},
		[]interface{}{"SUMMARY"},
		[]interface{}{"Total Students", sum.TotalStudents},
		[]interface{}{"Average Attendance", "", "", "", strconv.Itoa(sum.AverageRate) + "%"},
		[]interface{}{"Excellent (>=90%)", sum.Excellent},
		[]interface{}{"Good (75-89%)", sum.Good},
		[]interface{}{"Average (60-74%)", sum.Average},
		[]interface{}{"Poor (<60%)", sum.Poor},
	)

	for i, line := range lines {
		for j, val := range line {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return core.Attachment{}, errors.Wrap(err, "resolving cell name")
			}
			if err = f.SetCellValue(sheetName, cell, val); err != nil {
				return core.Attachment{}, errors.Wrap(err, "setting cell value")
			}
		}
	}

	widths := []float64{25, 12, 12, 12, 15}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return core.Attachment{}, errors.Wrap(err, "resolving column name")
		}
		if err = f.SetColWidth(sheetName, col, col, width); err != nil {
			return core.Attachment{}, errors.Wrap(err, "setting column width")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return core.Attachment{}, errors.Wrap(err, "writing workbook")
	}
	return core.Attachment{
		Content:     buf,
		ContentType: XLSXContentType,
		Filename:    e.Filename(batchName, month, now),
	}, nil
}

func (e *ReportExporter) Filename(batchName, month string, now time.Time) string {
	return fmt.Sprintf("%s_attendance_%s_%s_%s.xlsx",
		strings.ToUpper(e.appName),
		strings.Join(strings.Fields(batchName), "_"),
		month,
		now.Format(core.DateFormat),
	)
}

func formatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
