package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/mahudhurio/core/batch"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_batchApi_create(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required", "capacity": "this field is required"}),
		},
		{
			name:     "negative capacity",
			body:     []byte(`{"name": "Morning Batch A", "capacity": -5}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"capacity": "capacity must be greater than 0"}),
		},
		{
			name:     "ok",
			body:     marchallObj(t, batch.NewBatch{Name: "Morning Batch A", Capacity: 35, Schedule: "9:00 AM - 12:00 PM", Instructor: "Prof. Smith"}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/batches", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
				}
				var bch batch.Batch
				if err := json.Unmarshal(rec.Body.Bytes(), &bch); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if bch.ID == "" {
					t.Error("created batch has no ID")
				}
				if bch.CreatedDate == "" {
					t.Error("CreatedDate should default to today")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_batchApi_query(t *testing.T) {
	app := setup(t)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 10)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		testutil.CreateStudent(t, stdRepo, name, bch.ID)
	}

	req, rec := newRequest(http.MethodGet, "/v1/batches")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	var res []struct {
		batch.Batch
		CurrentStudents int                  `json:"current_students"`
		CapacityStatus  batch.CapacityStatus `json:"capacity_status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d batches, want 1", len(res))
	}
	if res[0].CurrentStudents != 9 {
		t.Errorf("CurrentStudents = %d, want 9", res[0].CurrentStudents)
	}
	if res[0].CapacityStatus != batch.CapacityCritical {
		t.Errorf("CapacityStatus = %v, want %v", res[0].CapacityStatus, batch.CapacityCritical)
	}
}

func Test_batchApi_destroy(t *testing.T) {
	app := setup(t)

	bch := testutil.CreateBatch(t, bchRepo, "Morning Batch A", 35)
	jane := testutil.CreateStudent(t, stdRepo, "jane", bch.ID)
	testutil.MarkAttendance(t, attRepo, jane.ID, "2024-03-01", true)

	req, rec := newRequest(http.MethodDelete, "/v1/batches/"+bch.ID)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	// students survive, unassigned; attendance history untouched
	std, err := stdRepo.GetStudentByID(context.Background(), jane.ID)
	if err != nil {
		t.Fatalf("GetStudentByID() failed: %v", err)
	}
	if std.BatchID != "" {
		t.Errorf("BatchID = %q, want unassigned", std.BatchID)
	}
	records, err := attRepo.QueryRecords(context.Background())
	if err != nil {
		t.Fatalf("QueryRecords() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}
