package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	"github.com/trezcool/mahudhurio/core/dashboard"
	"github.com/trezcool/mahudhurio/core/student"
	exportsvc "github.com/trezcool/mahudhurio/services/export"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		StudentSvc     *student.Service
		BatchSvc       *batch.Service
		AttendanceSvc  *attendance.Service
		DashboardSvc   *dashboard.Service
		Exporter       *exportsvc.ReportExporter
		MailSvc        core.EmailService
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps         ServerDeps
		app          *echo.Echo
		errChan      chan error
		shutdownChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:         deps,
		app:          echo.New(),
		errChan:      make(chan error, 1),
		shutdownChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownChan, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerStudentAPI(v1, s.deps.StudentSvc, s.deps.Validate)
	registerBatchAPI(v1, s.deps.BatchSvc, s.deps.Validate)
	registerAttendanceAPI(v1, s.deps.AttendanceSvc, s.deps.Validate)
	registerReportAPI(v1, s.deps)
	registerDashboardAPI(v1, s.deps.DashboardSvc)
}

// signalShutdown lets request handlers trigger a graceful shutdown on
// integrity errors.
func (s *server) signalShutdown() {
	s.shutdownChan <- syscall.SIGTERM
}

func (s *server) Start() {
	s.errChan <- s.app.Start(s.deps.Conf.Server.Addr)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownChan
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Mahudhurio API!")
}
