package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lesson-market/pkg/logger"
	"lesson-market/pkg/middleware"
	"lesson-market/services/marketplace/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error    string `json:"error"`
	LoginURL string `json:"login_url,omitempty"`
}

// errorResponder maps domain errors to status codes.
type errorResponder struct {
	loginURL string
	logger   *logger.Logger
}

func (r errorResponder) respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, entity.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Login required", LoginURL: r.loginURL})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, entity.ErrInvalidAmount), errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		r.logger.Error("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// pathID returns the :id parameter. An id that is not a UUID matches no row and
// is answered with 404 before it reaches the store.
func (r errorResponder) pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		r.respond(c, fmt.Errorf("id %q: %w", id, entity.ErrNotFound))
		return "", false
	}
	return id, true
}

func viewerFrom(c *gin.Context) *entity.Viewer {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return nil
	}
	return &entity.Viewer{UserID: userID}
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
