package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfuentes/escolar/internal/pkg/apperrors"
)

func responseFor(t *testing.T, err error) (int, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"institution not found", apperrors.ErrInstitutionNotFound, http.StatusNotFound},
		{"score not found", apperrors.ErrScoreNotFound, http.StatusNotFound},
		{"duplicate registration", apperrors.ErrDuplicateRegistration, http.StatusConflict},
		{"duplicate score", apperrors.ErrDuplicateScore, http.StatusConflict},
		{"duplicate id number", apperrors.ErrDuplicateIDNumber, http.StatusConflict},
		{"registration exhausted", apperrors.ErrRegistrationExhausted, http.StatusConflict},
		{"grade not found", apperrors.ErrGradeNotFound, http.StatusBadRequest},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := responseFor(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleAPIErrorWrappedError(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student 42 not found")
	status, body := responseFor(t, wrapped)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "student 42 not found", body["error"])
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := responseFor(t, errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", body["error"])
}
