package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/mahudhurio/core/attendance"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	exportsvc "github.com/trezcool/mahudhurio/services/export"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_reportApi_monthly(t *testing.T) {
	app := setup(t)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-01", true)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-02", false)

	tests := []httpTest{
		{
			name:     "missing params",
			path:     "/v1/reports/monthly",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"batch": "this field is required", "month": "this field is required"}),
		},
		{
			name:     "bad month",
			path:     "/v1/reports/monthly?batch=" + bch.ID + "&month=2024-03-01",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"month": "must be a month in YYYY-MM format"}),
		},
		{
			name:     "unknown batch",
			path:     "/v1/reports/monthly?batch=6ba7b810-9dad-41d1-80b4-00c04fd430c8&month=2024-03",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/reports/monthly?batch="+bch.ID+"&month=2024-03")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}

		var res struct {
			Month string `json:"month"`
			Rows  []struct {
				attendance.ReportRow
				Status attendance.RateStatus `json:"status"`
			} `json:"rows"`
			Summary attendance.ReportSummary `json:"summary"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(res.Rows) != 1 {
			t.Fatalf("got %d rows, want 1", len(res.Rows))
		}
		row := res.Rows[0]
		if row.TotalDays != 2 || row.PresentDays != 1 || row.Percentage != 50 {
			t.Errorf("row = %+v, want 2 days, 1 present, 50%%", row)
		}
		if row.Status != attendance.RatePoor {
			t.Errorf("status = %v, want %v", row.Status, attendance.RatePoor)
		}
		if res.Summary.TotalStudents != 1 || res.Summary.AverageRate != 50 {
			t.Errorf("summary = %+v, want 1 student at 50%%", res.Summary)
		}
	})
}

func Test_reportApi_export(t *testing.T) {
	app := setup(t)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)

	t.Run("no data", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "no attendance data to export"}),
		}
		req, rec := newRequest(http.MethodGet, "/v1/reports/monthly/export?batch="+bch.ID+"&month=2024-03")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-01", true)

		req, rec := newRequest(http.MethodGet, "/v1/reports/monthly/export?batch="+bch.ID+"&month=2024-03")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != exportsvc.XLSXContentType {
			t.Errorf("Content-Type = %q, want %q", ct, exportsvc.XLSXContentType)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd == "" {
			t.Error("missing Content-Disposition header")
		}
		if rec.Body.Len() == 0 {
			t.Error("empty workbook body")
		}
	})
}

func Test_reportApi_email(t *testing.T) {
	app := setup(t)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-01", true)

	t.Run("missing recipients", func(t *testing.T) {
		tt := httpTest{
			body:     marchallObj(t, map[string]string{"batch": bch.ID, "month": "2024-03"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"to": "this field is required"}),
		}
		req, rec := newRequest(http.MethodPost, "/v1/reports/monthly/email", tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		sentCount := len(emailsvc.SentMessages)

		body := marchallObj(t, map[string]interface{}{
			"batch": bch.ID,
			"month": "2024-03",
			"to":    []string{"principal@test.cd"},
		})
		req, rec := newRequest(http.MethodPost, "/v1/reports/monthly/email", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}

		if len(emailsvc.SentMessages) != sentCount+1 {
			t.Fatalf("got %d sent messages, want %d", len(emailsvc.SentMessages), sentCount+1)
		}
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		if len(msg.To) != 1 || msg.To[0].Address != "principal@test.cd" {
			t.Errorf("To = %+v, want principal@test.cd", msg.To)
		}
		if !msg.HasAttachments() {
			t.Fatal("message has no attachment")
		}
		if at := msg.Attachments[0]; at.ContentType != exportsvc.XLSXContentType {
			t.Errorf("attachment type = %q, want %q", at.ContentType, exportsvc.XLSXContentType)
		}
	})
}
