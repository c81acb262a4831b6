package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RevenueHandler struct {
	revenueUseCase usecase.RevenueUseCase
	errorResponder
}

func NewRevenueHandler(revenueUseCase usecase.RevenueUseCase, loginURL string, logger *logger.Logger) *RevenueHandler {
	return &RevenueHandler{
		revenueUseCase: revenueUseCase,
		errorResponder: errorResponder{loginURL: loginURL, logger: logger},
	}
}

type exportFunc func(ctx context.Context, w io.Writer, params usecase.ExportParams) error

// Summary godoc
// @Summary      Revenue dashboard
// @Description  Totals, this month's revenue, per-category breakdown and the top five items per category.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usecase.RevenueSummary
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/revenue/summary [get]
func (h *RevenueHandler) Summary(c *gin.Context) {
	summary, err := h.revenueUseCase.Summary(c.Request.Context())
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportRevenue godoc
// @Summary      Daily revenue CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        category  query  string  false  "all, video, course or prompt"
// @Param        range     query  string  false  "Nd (1-3650) or all, default 30d"
// @Success      200  {string}  string
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/export/revenue [get]
func (h *RevenueHandler) ExportRevenue(c *gin.Context) {
	h.export(c, "revenue", h.revenueUseCase.ExportRevenue)
}

// ExportBreakdown godoc
// @Summary      Revenue by category CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        range  query  string  false  "Nd (1-3650) or all, default 30d"
// @Success      200  {string}  string
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/export/revenue-breakdown [get]
func (h *RevenueHandler) ExportBreakdown(c *gin.Context) {
	h.export(c, "revenue-breakdown", h.revenueUseCase.ExportBreakdown)
}

// ExportRanking godoc
// @Summary      Best sellers CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        category  query  string  false  "all, video, course or prompt"
// @Param        range     query  string  false  "Nd (1-3650) or all, default 30d"
// @Param        limit     query  int     false  "1-100, default 10"
// @Success      200  {string}  string
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/export/revenue-ranking [get]
func (h *RevenueHandler) ExportRanking(c *gin.Context) {
	h.export(c, "revenue-ranking", h.revenueUseCase.ExportRanking)
}

// export validates the query and buffers the CSV so failures still produce a JSON error.
func (h *RevenueHandler) export(c *gin.Context, name string, write exportFunc) {
	now := h.revenueUseCase.Now()
	params, err := usecase.ParseExportParams(c.Query("category"), c.Query("range"), c.Query("limit"), now)
	if err != nil {
		h.respond(c, err)
		return
	}

	var buf bytes.Buffer
	if err := write(c.Request.Context(), &buf, params); err != nil {
		h.respond(c, err)
		return
	}

	filename := fmt.Sprintf("%s-%s-%s.csv", name, params.Category, now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
