package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/models/dto"
	"github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/middleware"
)

// InstitutionController handles the institution endpoints.
type InstitutionController struct {
	institutionService *services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService *services.InstitutionService) *InstitutionController {
	return &InstitutionController{institutionService: institutionService}
}

// ListInstitutions handles GET /instituciones
func (c *InstitutionController) ListInstitutions(ctx *gin.Context) {
	institutions, err := c.institutionService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, institutions)
}

// GetInstitution handles GET /instituciones/:id
func (c *InstitutionController) GetInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	institution, err := c.institutionService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, institution)
}

// CreateInstitution handles POST /instituciones
func (c *InstitutionController) CreateInstitution(ctx *gin.Context) {
	var institution models.Institution
	if err := ctx.ShouldBindJSON(&institution); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	if errs := middleware.ValidateStruct(&institution); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	created, err := c.institutionService.Create(ctx.Request.Context(), &institution)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateInstitution handles PUT /instituciones/:id
func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var institution models.Institution
	if err := ctx.ShouldBindJSON(&institution); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}
	institution.ID = id

	if errs := middleware.ValidateStruct(&institution); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	updated, err := c.institutionService.Update(ctx.Request.Context(), &institution)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteInstitution handles DELETE /instituciones/:id
func (c *InstitutionController) DeleteInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.institutionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
