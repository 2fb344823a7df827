package stats

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wordbridge/core/internal/middleware"
	"github.com/wordbridge/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/stats", authMW)
	g.GET("", h.summary)
	g.GET("/history", h.history)
}

// GET /stats?period=daily|weekly|monthly
func (h *Handler) summary(c *gin.Context) {
	sum, err := h.svc.Summarize(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		ParsePeriod(c.Query("period")),
	)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, sum)
}

// GET /stats/history?period=weekly&limit=50
func (h *Handler) history(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	items, err := h.svc.History(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		ParsePeriod(c.Query("period")),
		limit,
	)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.List(c, items, len(items))
}
