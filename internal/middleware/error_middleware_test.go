package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emrekoc/schoolforum/internal/middleware"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusBadRequest, `{"error":"Invalid credentials"}`},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, `{"error":"Permission denied"}`},
		{"locked post", apperrors.ErrPostLocked, http.StatusForbidden, `{"error":"Post is locked"}`},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden, `{"error":"Account is disabled"}`},
		{"post not found", apperrors.ErrPostNotFound, http.StatusNotFound, `{"error":"post not found"}`},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, `{"error":"email already exists"}`},
		{"duplicate category", apperrors.ErrCategoryAlreadyExists, http.StatusBadRequest, `{"error":"category with this name already exists"}`},
		{"unexpected error hides detail", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestHandleAPIErrorValidation(t *testing.T) {
	verrs := apperrors.NewValidationErrors()
	verrs.Add("email", "invalid email format")
	verrs.Add("password", "too weak")

	w := serveError(t, verrs)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"field":"email","message":"invalid email format"},{"field":"password","message":"too weak"}]}`, w.Body.String())
}
