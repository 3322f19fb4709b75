package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/mahudhurio/apps/api/echo"
	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	"github.com/trezcool/mahudhurio/core/dashboard"
	"github.com/trezcool/mahudhurio/core/student"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	exportsvc "github.com/trezcool/mahudhurio/services/export"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
)

var (
	stdRepo student.Repository
	bchRepo batch.Repository
	attRepo attendance.Repository
)

func setup(t *testing.T) Server {
	t.Helper()

	conf := &core.Config{
		TestMode:         true,
		Env:              "TEST",
		AppName:          "Mahudhurio",
		DefaultFromEmail: mail.Address{Name: "Mahudhurio", Address: "noreply@localhost"},
	}

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	stdRepo = dummydb.NewStudentRepository(db)
	bchRepo = dummydb.NewBatchRepository(db)
	attRepo = dummydb.NewAttendanceRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	stdSvc := student.NewService(stdRepo)
	bchSvc := batch.NewService(bchRepo)
	attSvc := attendance.NewService(attRepo, stdRepo)
	dashSvc := dashboard.NewService(stdRepo, bchRepo, attRepo)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         testLogger{t: t},
			StudentSvc:     stdSvc,
			BatchSvc:       bchSvc,
			AttendanceSvc:  attSvc,
			DashboardSvc:   dashSvc,
			Exporter:       exportsvc.NewReportExporter(conf),
			MailSvc:        mailSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
