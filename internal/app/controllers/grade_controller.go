package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/models/dto"
	"github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/middleware"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
)

// GradeController handles the grade endpoints.
//
// A missing grade is a 404 here, unlike in the student endpoints where a
// dangling grade reference is a 400. handleGradeError translates before the
// shared mapping runs.
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

func handleGradeError(ctx *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrGradeNotFound) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(err.Error()))
		return
	}
	middleware.HandleAPIError(ctx, err)
}

// ListGrades handles GET /grados with an optional institucion query parameter.
func (c *GradeController) ListGrades(ctx *gin.Context) {
	institutionID, ok := parseOptionalIDQuery(ctx, "institucion")
	if !ok {
		return
	}

	grades, err := c.gradeService.List(ctx.Request.Context(), institutionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grades)
}

// GetGrade handles GET /grados/:id
func (c *GradeController) GetGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	grade, err := c.gradeService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		handleGradeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grade)
}

// CreateGrade handles POST /grados
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var grade models.Grade
	if err := ctx.ShouldBindJSON(&grade); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	if errs := middleware.ValidateStruct(&grade); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	created, err := c.gradeService.Create(ctx.Request.Context(), &grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateGrade handles PUT /grados/:id
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var grade models.Grade
	if err := ctx.ShouldBindJSON(&grade); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}
	grade.ID = id

	if errs := middleware.ValidateStruct(&grade); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	updated, err := c.gradeService.Update(ctx.Request.Context(), &grade)
	if err != nil {
		handleGradeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteGrade handles DELETE /grados/:id
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.gradeService.Delete(ctx.Request.Context(), id); err != nil {
		handleGradeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
