package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/batch"
)

type batchApi struct {
	svc      *batch.Service
	validate *validator.Validate
}

func registerBatchAPI(g *echo.Group, svc *batch.Service, validate *validator.Validate) {
	api := batchApi{svc: svc, validate: validate}

	bg := g.Group("/batches")
	bg.POST("", api.create)
	bg.GET("", api.query)
	bg.DELETE("", api.destroyMultiple)

	dg := bg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// BatchResponse adds the derived capacity status to a counted batch.
type BatchResponse struct {
	batch.WithCount
	CapacityStatus batch.CapacityStatus `json:"capacity_status"`
}

func newBatchResponse(b batch.WithCount) BatchResponse {
	return BatchResponse{WithCount: b, CapacityStatus: b.CapacityStatus()}
}

// Handlers

func (api *batchApi) create(ctx echo.Context) error {
	var data batch.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	bch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating batch")
	}
	return ctx.JSON(http.StatusCreated, bch)
}

func (api *batchApi) query(ctx echo.Context) error {
	batches, err := api.svc.QueryWithCount(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}

	res := make([]BatchResponse, 0, len(batches))
	for _, bch := range batches {
		res = append(res, newBatchResponse(bch))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *batchApi) retrieve(ctx echo.Context) error {
	bch, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == batch.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding batch by ID")
	}
	return ctx.JSON(http.StatusOK, bch)
}

func (api *batchApi) update(ctx echo.Context) error {
	var data batch.UpdateBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	bch, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == batch.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating batch")
	}
	return ctx.JSON(http.StatusOK, bch)
}

func (api *batchApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting batch")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *batchApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting batches")
	}
	return ctx.NoContent(http.StatusNoContent)
}
