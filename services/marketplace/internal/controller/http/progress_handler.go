package http

import (
	"net/http"
	"strconv"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressUseCase usecase.ProgressUseCase
	catalogUseCase  usecase.CatalogUseCase
	errorResponder
}

func NewProgressHandler(progressUseCase usecase.ProgressUseCase, catalogUseCase usecase.CatalogUseCase, loginURL string, logger *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressUseCase: progressUseCase,
		catalogUseCase:  catalogUseCase,
		errorResponder:  errorResponder{loginURL: loginURL, logger: logger},
	}
}

type ProgressRequest struct {
	Seconds   float64 `json:"seconds"`
	SessionID string  `json:"session_id"`
}

// StartPlayback godoc
// @Summary      Record a playback start
// @Description  Creates the history row at zero or refreshes last_viewed_at. Stored progress is never changed.
// @Tags         progress
// @Security     BearerAuth
// @Param        id   path  string  true  "Video ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Router       /videos/{id}/play [post]
func (h *ProgressHandler) StartPlayback(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.progressUseCase.StartPlayback(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordProgress godoc
// @Summary      Report playback position
// @Description  Throttled per player session. Dropped and failed ticks are still accepted.
// @Tags         progress
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string           true  "Video ID"
// @Param        request  body  ProgressRequest  true  "Position in seconds"
// @Success      202  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/progress [post]
func (h *ProgressHandler) RecordProgress(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	persisted := h.progressUseCase.RecordProgress(c.Request.Context(), usecase.ProgressTick{
		UserID:    c.GetString("user_id"),
		VideoID:   id,
		SessionID: req.SessionID,
		Seconds:   req.Seconds,
	})
	c.JSON(http.StatusAccepted, gin.H{"persisted": persisted})
}

// ResumePosition godoc
// @Summary      Resume position
// @Description  Stored progress clamped to [0, duration-1]. The duration comes from the query or the video host.
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Param        id        path   string  true   "Video ID"
// @Param        duration  query  int     false  "Known duration in seconds"
// @Success      200  {object}  usecase.ResumeInfo
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/resume [get]
func (h *ProgressHandler) ResumePosition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	duration, _ := strconv.Atoi(c.Query("duration"))

	video, err := h.catalogUseCase.GetVideo(c.Request.Context(), id)
	if err != nil {
		h.respond(c, err)
		return
	}
	info, err := h.progressUseCase.ResumePosition(c.Request.Context(), c.GetString("user_id"), video, duration)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
