package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/models/dto"
	"github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/middleware"
)

// StaffController handles the staff endpoints.
type StaffController struct {
	staffService *services.StaffService
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService *services.StaffService) *StaffController {
	return &StaffController{staffService: staffService}
}

// ListStaff handles GET /personal with optional cargo, institucion, estado
// and search query parameters; criteria combine.
func (c *StaffController) ListStaff(ctx *gin.Context) {
	var filter models.StaffFilter
	var ok bool

	if raw := ctx.Query("cargo"); raw != "" {
		position := models.StaffPosition(raw)
		if !models.ValidStaffPosition(position) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("parametro cargo invalido"))
			return
		}
		filter.Position = &position
	}
	if filter.InstitutionID, ok = parseOptionalIDQuery(ctx, "institucion"); !ok {
		return
	}
	if raw := ctx.Query("estado"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("parametro estado invalido"))
			return
		}
		filter.Active = &active
	}
	filter.Search = ctx.Query("search")

	staff, err := c.staffService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, staff)
}

// GetStaff handles GET /personal/:id
func (c *StaffController) GetStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	staff, err := c.staffService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, staff)
}

// CreateStaff handles POST /personal
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var staff models.Staff
	if err := ctx.ShouldBindJSON(&staff); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	if errs := middleware.ValidateStruct(&staff); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	created, err := c.staffService.Create(ctx.Request.Context(), &staff)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateStaff handles PUT /personal/:id
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var staff models.Staff
	if err := ctx.ShouldBindJSON(&staff); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}
	staff.ID = id

	if errs := middleware.ValidateStruct(&staff); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	updated, err := c.staffService.Update(ctx.Request.Context(), &staff)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteStaff handles DELETE /personal/:id
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.staffService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
