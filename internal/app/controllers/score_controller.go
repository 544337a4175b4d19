package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/models/dto"
	"github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/middleware"
)

// ScoreController handles the score endpoints.
type ScoreController struct {
	scoreService *services.ScoreService
}

// NewScoreController creates a new ScoreController
func NewScoreController(scoreService *services.ScoreService) *ScoreController {
	return &ScoreController{scoreService: scoreService}
}

// ListScores handles GET /calificaciones with optional alumno, materia and
// periodo query parameters; criteria combine.
func (c *ScoreController) ListScores(ctx *gin.Context) {
	var filter models.ScoreFilter
	var ok bool

	if filter.StudentID, ok = parseOptionalIDQuery(ctx, "alumno"); !ok {
		return
	}
	if filter.SubjectID, ok = parseOptionalIDQuery(ctx, "materia"); !ok {
		return
	}
	if filter.PeriodID, ok = parseOptionalIDQuery(ctx, "periodo"); !ok {
		return
	}

	scores, err := c.scoreService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, scores)
}

// GetScore handles GET /calificaciones/:id
func (c *ScoreController) GetScore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	score, err := c.scoreService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, score)
}

// CreateScore handles POST /calificaciones
func (c *ScoreController) CreateScore(ctx *gin.Context) {
	var score models.Score
	if err := ctx.ShouldBindJSON(&score); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	if errs := middleware.ValidateStruct(&score); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	created, err := c.scoreService.Create(ctx.Request.Context(), &score)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateScore handles PUT /calificaciones/:id
func (c *ScoreController) UpdateScore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var score models.Score
	if err := ctx.ShouldBindJSON(&score); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}
	score.ID = id

	if errs := middleware.ValidateStruct(&score); errs != nil {
		ctx.JSON(http.StatusBadRequest, errs)
		return
	}

	updated, err := c.scoreService.Update(ctx.Request.Context(), &score)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteScore handles DELETE /calificaciones/:id
func (c *ScoreController) DeleteScore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.scoreService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
