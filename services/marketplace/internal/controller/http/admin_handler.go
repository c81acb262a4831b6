package http

import (
	"net/http"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves content management for admins.
type AdminHandler struct {
	catalogUseCase usecase.CatalogUseCase
	errorResponder
}

func NewAdminHandler(catalogUseCase usecase.CatalogUseCase, loginURL string, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		catalogUseCase: catalogUseCase,
		errorResponder: errorResponder{loginURL: loginURL, logger: logger},
	}
}

type VideoRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Price        int      `json:"price"`
	IsFree       bool     `json:"is_free"`
	IsPublished  bool     `json:"is_published"`
	VimeoID      string   `json:"vimeo_id"`
	Genre        string   `json:"genre"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

func (r VideoRequest) toEntity(id string) *entity.Video {
	return &entity.Video{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		IsFree:       r.IsFree,
		IsPublished:  r.IsPublished,
		VimeoID:      r.VimeoID,
		Genre:        r.Genre,
		Tags:         r.Tags,
		ThumbnailURL: r.ThumbnailURL,
	}
}

type CourseRequest struct {
	Title        string                 `json:"title" binding:"required"`
	Description  string                 `json:"description"`
	Price        int                    `json:"price"`
	IsPublished  bool                   `json:"is_published"`
	ThumbnailURL string                 `json:"thumbnail_url"`
	Metadata     map[string]interface{} `json:"metadata"`
}

func (r CourseRequest) toEntity(id string) *entity.Course {
	return &entity.Course{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		IsPublished:  r.IsPublished,
		ThumbnailURL: r.ThumbnailURL,
		Metadata:     r.Metadata,
	}
}

type PromptRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"required"`
	AITool        string   `json:"ai_tool"`
	Price         int      `json:"price"`
	PromptText    string   `json:"prompt_text"`
	ExampleImages []string `json:"example_images"`
	IsPublished   bool     `json:"is_published"`
}

func (r PromptRequest) toEntity(id string) *entity.Prompt {
	return &entity.Prompt{
		ID:            id,
		Title:         r.Title,
		Description:   r.Description,
		Category:      entity.PromptCategory(r.Category),
		AITool:        r.AITool,
		Price:         r.Price,
		PromptText:    r.PromptText,
		ExampleImages: r.ExampleImages,
		IsPublished:   r.IsPublished,
	}
}

// CourseContentsRequest lists the course's children in display order.
type CourseContentsRequest struct {
	VideoIDs  []string `json:"video_ids"`
	PromptIDs []string `json:"prompt_ids"`
}

// CreateVideo godoc
// @Summary      Create a video
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  VideoRequest  true  "Video"
// @Success      201  {object}  entity.Video
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/videos [post]
func (h *AdminHandler) CreateVideo(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	video := req.toEntity("")
	if err := h.catalogUseCase.CreateVideo(c.Request.Context(), video); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

// UpdateVideo godoc
// @Summary      Update a video
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string        true  "Video ID"
// @Param        request  body  VideoRequest  true  "Video"
// @Success      200  {object}  entity.Video
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/videos/{id} [put]
func (h *AdminHandler) UpdateVideo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	video := req.toEntity(id)
	if err := h.catalogUseCase.UpdateVideo(c.Request.Context(), video); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete a video
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Video ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/videos/{id} [delete]
func (h *AdminHandler) DeleteVideo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.catalogUseCase.DeleteVideo(c.Request.Context(), id); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCourse godoc
// @Summary      Create a course
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CourseRequest  true  "Course"
// @Success      201  {object}  entity.Course
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/courses [post]
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	course := req.toEntity("")
	if err := h.catalogUseCase.CreateCourse(c.Request.Context(), course); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// @Summary      Update a course
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string         true  "Course ID"
// @Param        request  body  CourseRequest  true  "Course"
// @Success      200  {object}  entity.Course
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/courses/{id} [put]
func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	course := req.toEntity(id)
	if err := h.catalogUseCase.UpdateCourse(c.Request.Context(), course); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary      Delete a course
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Course ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/courses/{id} [delete]
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.catalogUseCase.DeleteCourse(c.Request.Context(), id); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceCourseContents godoc
// @Summary      Replace course contents
// @Description  Videos keep order indexes 0..N-1, prompts follow them.
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id       path  string                 true  "Course ID"
// @Param        request  body  CourseContentsRequest  true  "Ordered content ids"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/courses/{id}/contents [put]
func (h *AdminHandler) ReplaceCourseContents(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CourseContentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.catalogUseCase.ReplaceCourseContents(c.Request.Context(), id, req.VideoIDs, req.PromptIDs); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreatePrompt godoc
// @Summary      Create a prompt
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  PromptRequest  true  "Prompt"
// @Success      201  {object}  entity.Prompt
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/prompts [post]
func (h *AdminHandler) CreatePrompt(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	prompt := req.toEntity("")
	if err := h.catalogUseCase.CreatePrompt(c.Request.Context(), prompt); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, prompt)
}

// UpdatePrompt godoc
// @Summary      Update a prompt
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string         true  "Prompt ID"
// @Param        request  body  PromptRequest  true  "Prompt"
// @Success      200  {object}  entity.Prompt
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/prompts/{id} [put]
func (h *AdminHandler) UpdatePrompt(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	prompt := req.toEntity(id)
	if err := h.catalogUseCase.UpdatePrompt(c.Request.Context(), prompt); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// DeletePrompt godoc
// @Summary      Delete a prompt
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Prompt ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/prompts/{id} [delete]
func (h *AdminHandler) DeletePrompt(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.catalogUseCase.DeletePrompt(c.Request.Context(), id); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPromptAttachment godoc
// @Summary      Upload a prompt attachment
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Prompt ID"
// @Param        file  formData  file    true  "Attachment"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/prompts/{id}/attachments [post]
func (h *AdminHandler) UploadPromptAttachment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read file"})
		return
	}
	defer file.Close()

	key, err := h.catalogUseCase.UploadPromptAttachment(
		c.Request.Context(),
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}
