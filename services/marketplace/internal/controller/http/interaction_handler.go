package http

import (
	"net/http"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	errorResponder
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, loginURL string, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		errorResponder:     errorResponder{loginURL: loginURL, logger: logger},
	}
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// ToggleFavorite godoc
// @Summary      Toggle favorite
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Video ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/favorite [post]
func (h *InteractionHandler) ToggleFavorite(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	favorite, err := h.interactionUseCase.ToggleFavorite(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": favorite})
}

// ListComments godoc
// @Summary      List comments on a video
// @Tags         interactions
// @Produce      json
// @Param        id      path   string  true   "Video ID"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/comments [get]
func (h *InteractionHandler) ListComments(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)
	comments, err := h.interactionUseCase.ListComments(c.Request.Context(), id, limit, offset)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment godoc
// @Summary      Comment on a video
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Video ID"
// @Param        request  body  CreateCommentRequest  true  "Comment body (1-2000 characters)"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  ErrorResponse
// @Router       /videos/{id}/comments [post]
func (h *InteractionHandler) CreateComment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.interactionUseCase.CreateComment(c.Request.Context(), c.GetString("user_id"), id, req.Body)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Allowed for the author and for admins.
// @Tags         interactions
// @Security     BearerAuth
// @Param        id   path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.interactionUseCase.DeleteComment(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe godoc
// @Summary      Current profile
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  ErrorResponse
// @Router       /me [get]
func (h *InteractionHandler) GetMe(c *gin.Context) {
	profile, err := h.interactionUseCase.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListHistory godoc
// @Summary      Learning history
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /me/history [get]
func (h *InteractionHandler) ListHistory(c *gin.Context) {
	limit, offset := pageParams(c)
	history, err := h.interactionUseCase.ListHistory(c.Request.Context(), c.GetString("user_id"), limit, offset)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// ListPurchases godoc
// @Summary      Purchases of the current user
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/purchases [get]
func (h *InteractionHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.interactionUseCase.ListPurchases(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// ListFavorites godoc
// @Summary      Favorites of the current user
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /me/favorites [get]
func (h *InteractionHandler) ListFavorites(c *gin.Context) {
	limit, offset := pageParams(c)
	favorites, err := h.interactionUseCase.ListFavorites(c.Request.Context(), c.GetString("user_id"), limit, offset)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
