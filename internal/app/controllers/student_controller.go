package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/models/dto"
	"github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/middleware"
)

// StudentController handles the student endpoints. All alias handling lives
// in dto.StudentPayload; the controller only parses, delegates and renders.
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent handles POST /alumnos
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var payload dto.StudentPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	attrs, fieldErrs := payload.Normalize(c.gradeExists(ctx))
	if fieldErrs != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), attrs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStudentResponse(student))
}

// GetStudent handles GET /alumnos/:id
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// ListStudents handles GET /alumnos with optional grado, institucion and
// search query parameters. Only the highest-priority filter present applies.
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter models.StudentFilter
	var ok bool

	if filter.GradeID, ok = parseOptionalIDQuery(ctx, "grado"); !ok {
		return
	}
	if filter.InstitutionID, ok = parseOptionalIDQuery(ctx, "institucion"); !ok {
		return
	}
	filter.Search = ctx.Query("search")

	students, err := c.studentService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentListResponse(students))
}

// UpdateStudent handles PUT /alumnos/:id. Only the fields present in the
// payload are changed.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var payload dto.StudentPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cuerpo de la peticion invalido"))
		return
	}

	attrs, fieldErrs := payload.NormalizePartial(c.gradeExists(ctx))
	if fieldErrs != nil {
		ctx.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), id, attrs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// DeleteStudent handles DELETE /alumnos/:id
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// gradeExists adapts the service's grade check for the payload normalizer.
// Lookup failures count as nonexistent so an alias-supplied grade is dropped
// rather than failing the request.
func (c *StudentController) gradeExists(ctx *gin.Context) dto.GradeExistsFunc {
	return func(gradeID int64) bool {
		exists, err := c.studentService.GradeExists(ctx.Request.Context(), gradeID)
		if err != nil {
			return false
		}
		return exists
	}
}
