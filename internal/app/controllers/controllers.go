package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/models/dto"
)

// parseIDParam reads the :id path parameter. On failure it writes a 400
// response and returns ok=false; the handler should just return.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("identificador invalido"))
		return 0, false
	}
	return id, true
}

// parseOptionalIDQuery reads an optional integer query parameter. On failure
// it writes a 400 response and returns ok=false.
func parseOptionalIDQuery(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("parametro "+name+" invalido"))
		return nil, false
	}
	return &id, true
}
