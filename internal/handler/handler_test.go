package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"inkwell/internal/repository"
	"inkwell/internal/service"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", repository.ErrUserNotFound, http.StatusNotFound},
		{"blog not found", repository.ErrBlogNotFound, http.StatusNotFound},
		{"username taken", repository.ErrUsernameExists, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owner", service.ErrNotOwner, http.StatusForbidden},
		{"blog limit reached", service.ErrBlogLimitReached, http.StatusForbidden},
		{"comment limit reached", service.ErrCommentLimitReached, http.StatusForbidden},
		{"duplicate root comment", service.ErrDuplicateRootComment, http.StatusConflict},
		{"parent mismatch", service.ErrParentMismatch, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
