package http

import (
	"net/http"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchaseUseCase usecase.PurchaseUseCase
	errorResponder
}

func NewPurchaseHandler(purchaseUseCase usecase.PurchaseUseCase, loginURL string, logger *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUseCase: purchaseUseCase,
		errorResponder:  errorResponder{loginURL: loginURL, logger: logger},
	}
}

type PurchaseVideoRequest struct {
	// Amount overrides the catalog price when set.
	Amount *int `json:"amount"`
}

// PurchaseVideo godoc
// @Summary      Purchase a video
// @Description  Records an active purchase. A zero amount is a free claim. A custom amount must be zero or greater.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true   "Video ID"
// @Param        request  body  PurchaseVideoRequest  false  "Optional custom amount"
// @Success      201  {object}  entity.Purchase
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/purchase [post]
func (h *PurchaseHandler) PurchaseVideo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req PurchaseVideoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	purchase, err := h.purchaseUseCase.PurchaseVideo(c.Request.Context(), c.GetString("user_id"), id, req.Amount)
	h.reply(c, purchase, err)
}

// PurchaseCourse godoc
// @Summary      Purchase a course
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Course ID"
// @Success      201  {object}  entity.Purchase
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /courses/{id}/purchase [post]
func (h *PurchaseHandler) PurchaseCourse(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	purchase, err := h.purchaseUseCase.PurchaseCourse(c.Request.Context(), c.GetString("user_id"), id)
	h.reply(c, purchase, err)
}

// PurchasePrompt godoc
// @Summary      Purchase a prompt
// @Description  Free prompts are unlocked through a zero-amount purchase.
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Prompt ID"
// @Success      201  {object}  entity.Purchase
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /prompts/{id}/purchase [post]
func (h *PurchaseHandler) PurchasePrompt(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	purchase, err := h.purchaseUseCase.PurchasePrompt(c.Request.Context(), c.GetString("user_id"), id)
	h.reply(c, purchase, err)
}

func (h *PurchaseHandler) reply(c *gin.Context, purchase *entity.Purchase, err error) {
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}
