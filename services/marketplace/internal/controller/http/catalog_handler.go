package http

import (
	"net/http"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	errorResponder
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, loginURL string, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		errorResponder: errorResponder{loginURL: loginURL, logger: logger},
	}
}

// ListVideos godoc
// @Summary      List published videos
// @Tags         videos
// @Produce      json
// @Param        genre   query  string  false  "Genre filter"
// @Param        limit   query  int     false  "Page size (default 20, max 100)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /videos [get]
func (h *CatalogHandler) ListVideos(c *gin.Context) {
	limit, offset := pageParams(c)
	videos, err := h.catalogUseCase.ListVideos(c.Request.Context(), entity.ContentFilter{
		Genre:  c.Query("genre"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "limit": limit, "offset": offset})
}

// GetVideo godoc
// @Summary      Video page
// @Description  Returns the video, whether the viewer may watch it, a paywall when they may not, and the resume position for signed-in viewers.
// @Tags         videos
// @Produce      json
// @Param        id   path  string  true  "Video ID"
// @Success      200  {object}  usecase.VideoPage
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id} [get]
func (h *CatalogHandler) GetVideo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	page, err := h.catalogUseCase.GetVideoPage(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListCourses godoc
// @Summary      List published courses
// @Tags         courses
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	limit, offset := pageParams(c)
	courses, err := h.catalogUseCase.ListCourses(c.Request.Context(), entity.ContentFilter{Limit: limit, Offset: offset})
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "limit": limit, "offset": offset})
}

// GetCourse godoc
// @Summary      Course page
// @Tags         courses
// @Produce      json
// @Param        id   path  string  true  "Course ID"
// @Success      200  {object}  usecase.CoursePage
// @Failure      404  {object}  ErrorResponse
// @Router       /courses/{id} [get]
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	page, err := h.catalogUseCase.GetCoursePage(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListPrompts godoc
// @Summary      List published prompts
// @Tags         prompts
// @Produce      json
// @Param        category  query  string  false  "Category"  Enums(image, video, music, text, code)
// @Param        limit     query  int     false  "Page size"
// @Param        offset    query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /prompts [get]
func (h *CatalogHandler) ListPrompts(c *gin.Context) {
	limit, offset := pageParams(c)
	prompts, err := h.catalogUseCase.ListPrompts(c.Request.Context(), entity.ContentFilter{
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts, "limit": limit, "offset": offset})
}

// GetPrompt godoc
// @Summary      Prompt page
// @Description  prompt_text and attachment URLs are only present for viewers holding an active purchase.
// @Tags         prompts
// @Produce      json
// @Param        id   path  string  true  "Prompt ID"
// @Success      200  {object}  usecase.PromptPage
// @Failure      404  {object}  ErrorResponse
// @Router       /prompts/{id} [get]
func (h *CatalogHandler) GetPrompt(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	page, err := h.catalogUseCase.GetPromptPage(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
