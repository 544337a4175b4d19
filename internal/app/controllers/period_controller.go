package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/models/dto"
	"github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/middleware"
)

// PeriodController handles the academic period endpoints.
type PeriodController struct {
	periodService *services.PeriodService
}

// NewPeriodController creates a new PeriodController
func NewPeriodController(periodService *services.PeriodService) *PeriodController {
	return &PeriodController{periodService: periodService}
}

// ListPeriods handles GET /periodos
func (c *PeriodController) ListPeriods(ctx *gin.Context) {
	periods, err := c.periodService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, periods)
}

// GetPeriod handles GET /periodos/:id
func (c *PeriodController) GetPeriod(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	period, err := c.periodService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, period)
}

// CreatePeriod handles POST /periodos
func (c *PeriodController) CreatePeriod(ctx *gin.Context) {
	var period models.Period
	if err := ctx.ShouldBindJSON(&period); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	if errs := middleware.ValidateStruct(&period); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	created, err := c.periodService.Create(ctx.Request.Context(), &period)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdatePeriod handles PUT /periodos/:id
func (c *PeriodController) UpdatePeriod(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var period models.Period
	if err := ctx.ShouldBindJSON(&period); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}
	period.ID = id

	if errs := middleware.ValidateStruct(&period); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	updated, err := c.periodService.Update(ctx.Request.Context(), &period)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeletePeriod handles DELETE /periodos/:id
func (c *PeriodController) DeletePeriod(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.periodService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
