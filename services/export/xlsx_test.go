package exportsvc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

func TestReportExporter_Export(t *testing.T) {
	exporter := NewReportExporter(&core.Config{AppName: "Mahudhurio"})

	rows := []attendance.ReportRow{
		{StudentName: "Jane Smith", TotalDays: 2, PresentDays: 1, AbsentDays: 1, Percentage: 50},
		{StudentName: "John Doe", TotalDays: 2, PresentDays: 2, AbsentDays: 0, Percentage: 100},
	}
	sum := attendance.Summarize(rows)

	at, err := exporter.Export("Morning Batch A", "2024-03", rows, sum)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	if at.ContentType != XLSXContentType {
		t.Errorf("ContentType = %q, want %q", at.ContentType, XLSXContentType)
	}
	if !strings.HasPrefix(at.Filename, "MAHUDHURIO_attendance_Morning_Batch_A_2024-03_") {
		t.Errorf("unexpected filename %q", at.Filename)
	}
	if !strings.HasSuffix(at.Filename, ".xlsx") {
		t.Errorf("unexpected filename %q", at.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(at.Content.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	defer f.Close()

	get := func(cell string) string {
		t.Helper()
		val, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		return val
	}

	if got := get("A1"); got != "MAHUDHURIO ATTENDANCE MANAGEMENT SYSTEM" {
		t.Errorf("A1 = %q", got)
	}
	if got := get("A2"); got != "Attendance Report - Morning Batch A" {
		t.Errorf("A2 = %q", got)
	}
	if got := get("A3"); got != "Month: March 2024" {
		t.Errorf("A3 = %q", got)
	}
	if got := get("A6"); got != "Student Name" {
		t.Errorf("A6 = %q", got)
	}
	if got := get("A7"); got != "Jane Smith" {
		t.Errorf("A7 = %q", got)
	}
	if got := get("E7"); got != "50%" {
		t.Errorf("E7 = %q", got)
	}
	if got := get("E8"); got != "100%" {
		t.Errorf("E8 = %q", got)
	}
	// summary block starts after the data rows
	if got := get("A10"); got != "SUMMARY" {
		t.Errorf("A10 = %q", got)
	}
	if got := get("B11"); got != "2" {
		t.Errorf("B11 = %q", got)
	}
	if got := get("E12"); got != "75%" {
		t.Errorf("E12 = %q", got)
	}
}
