package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/batch"
	exportsvc "github.com/trezcool/mahudhurio/services/export"
)

type reportApi struct {
	attendanceSvc *attendance.Service
	batchSvc      *batch.Service
	exporter      *exportsvc.ReportExporter
	mailSvc       core.EmailService
	validate      *validator.Validate
}

func registerReportAPI(g *echo.Group, deps ServerDeps) {
	api := reportApi{
		attendanceSvc: deps.AttendanceSvc,
		batchSvc:      deps.BatchSvc,
		exporter:      deps.Exporter,
		mailSvc:       deps.MailSvc,
		validate:      deps.Validate,
	}

	rg := g.Group("/reports/monthly")
	rg.GET("", api.monthly)
	rg.GET("/export", api.export)
	rg.POST("/email", api.email)
}

type (
	// MonthlyReportRequest identifies one batch-month report.
	MonthlyReportRequest struct {
		BatchID string `query:"batch" json:"batch" validate:"required,uuid4"`
		Month   string `query:"month" json:"month" validate:"required,yearmonth"`
	}

	// ReportRowResponse adds the derived rate status to a report row.
	ReportRowResponse struct {
		attendance.ReportRow
		Status attendance.RateStatus `json:"status"`
	}

	MonthlyReportResponse struct {
		Batch   batch.Batch              `json:"batch"`
		Month   string                   `json:"month"`
		Rows    []ReportRowResponse      `json:"rows"`
		Summary attendance.ReportSummary `json:"summary"`
	}

	EmailReportRequest struct {
		MonthlyReportRequest
		To []string `json:"to" validate:"required,min=1,dive,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (r *MonthlyReportRequest) Validate(validate *validator.Validate) error {
	r.BatchID = core.CleanString(r.BatchID)
	r.Month = core.CleanString(r.Month)
	return validate.Struct(r)
}

func (r *EmailReportRequest) Validate(validate *validator.Validate) error {
	r.BatchID = core.CleanString(r.BatchID)
	r.Month = core.CleanString(r.Month)
	for i, to := range r.To {
		r.To[i] = core.CleanString(to, true /* lower */)
	}
	return validate.Struct(r)
}

// report resolves the batch then computes its monthly rows and summary.
func (api *reportApi) report(ctx echo.Context, req MonthlyReportRequest) (batch.Batch, []attendance.ReportRow, attendance.ReportSummary, error) {
	bch, err := api.batchSvc.GetByID(ctx.Request().Context(), req.BatchID)
	if err != nil {
		if errors.Cause(err) == batch.ErrNotFound {
			return batch.Batch{}, nil, attendance.ReportSummary{}, errHttpNotFound
		}
		return batch.Batch{}, nil, attendance.ReportSummary{}, errors.Wrap(err, "finding batch by ID")
	}

	rows, sum, err := api.attendanceSvc.Report(ctx.Request().Context(), req.BatchID, req.Month)
	if err != nil {
		return batch.Batch{}, nil, attendance.ReportSummary{}, errors.Wrap(err, "computing monthly report")
	}
	return bch, rows, sum, nil
}

// Handlers

func (api *reportApi) monthly(ctx echo.Context) error {
	var query MonthlyReportRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to MonthlyReportRequest")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}

	bch, rows, sum, err := api.report(ctx, query)
	if err != nil {
		return err
	}

	res := MonthlyReportResponse{
		Batch:   bch,
		Month:   query.Month,
		Rows:    make([]ReportRowResponse, 0, len(rows)),
		Summary: sum,
	}
	for _, row := range rows {
		res.Rows = append(res.Rows, ReportRowResponse{ReportRow: row, Status: row.Status()})
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *reportApi) export(ctx echo.Context) error {
	var query MonthlyReportRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to MonthlyReportRequest")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}

	bch, rows, sum, err := api.report(ctx, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return core.NewValidationError(errors.New("no attendance data to export"))
	}

	at, err := api.exporter.Export(bch.Name, query.Month, rows, sum)
	if err != nil {
		return errors.Wrap(err, "exporting monthly report")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+at.Filename+`"`)
	return ctx.Blob(http.StatusOK, at.ContentType, at.Content.Bytes())
}

func (api *reportApi) email(ctx echo.Context) error {
	var data EmailReportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EmailReportRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	bch, rows, sum, err := api.report(ctx, data.MonthlyReportRequest)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return core.NewValidationError(errors.New("no attendance data to send"))
	}

	at, err := api.exporter.Export(bch.Name, data.Month, rows, sum)
	if err != nil {
		return errors.Wrap(err, "exporting monthly report")
	}

	to := make([]mail.Address, 0, len(data.To))
	for _, addr := range data.To {
		to = append(to, mail.Address{Address: addr})
	}
	api.mailSvc.SendMessages(&core.EmailMessage{
		To:          to,
		Subject:     "Attendance Report - " + bch.Name + " - " + data.Month,
		TextContent: "Please find attached the monthly attendance report for " + bch.Name + " (" + data.Month + ").",
		Attachments: []core.Attachment{at},
	})

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "The report is on its way to your inbox."})
}
