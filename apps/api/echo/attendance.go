package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.GET("/sheet", api.sheet)
	ag.POST("", api.saveSheet)
}

type (
	// SheetRequest identifies one batch-day sheet.
	SheetRequest struct {
		BatchID string `query:"batch" validate:"required,uuid4"`
		Date    string `query:"date" validate:"required,dateonly"`
	}

	// SheetResponse is a sheet with its precomputed present/absent counts.
	SheetResponse struct {
		attendance.Sheet
		Present int `json:"present"`
		Absent  int `json:"absent"`
	}
)

func (sr *SheetRequest) Validate(validate *validator.Validate) error {
	sr.BatchID = core.CleanString(sr.BatchID)
	sr.Date = core.CleanString(sr.Date)
	return validate.Struct(sr)
}

// Handlers

func (api *attendanceApi) query(ctx echo.Context) error {
	records, err := api.svc.Records(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying attendance records")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) sheet(ctx echo.Context) error {
	var query SheetRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to SheetRequest")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}

	sheet, err := api.svc.Sheet(ctx.Request().Context(), query.BatchID, query.Date)
	if err != nil {
		return errors.Wrap(err, "loading attendance sheet")
	}

	present, absent := sheet.Summary()
	return ctx.JSON(http.StatusOK, SheetResponse{Sheet: sheet, Present: present, Absent: absent})
}

func (api *attendanceApi) saveSheet(ctx echo.Context) error {
	var data attendance.SheetInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SheetInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.SaveSheet(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "saving attendance sheet")
	}

	sheet, err := api.svc.Sheet(ctx.Request().Context(), data.BatchID, data.Date)
	if err != nil {
		return errors.Wrap(err, "loading attendance sheet")
	}
	present, absent := sheet.Summary()
	return ctx.JSON(http.StatusOK, SheetResponse{Sheet: sheet, Present: present, Absent: absent})
}
