package vocab

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/wordbridge/core/internal/middleware"
	"github.com/wordbridge/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/vocab", authMW)
	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/favorites", h.favorites)
	g.PATCH("/:id/favorite", h.setFavorite)
	g.PATCH("/:id/difficulty", h.setDifficulty)
	g.DELETE("/:id", h.remove)
}

// GET /vocab
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.List(c, items, len(items))
}

// GET /vocab/search
func (h *Handler) search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.Search(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.List(c, items, len(items))
}

// GET /vocab/favorites?sortBy=word&order=asc
func (h *Handler) favorites(c *gin.Context) {
	items, err := h.svc.Favorites(c.Request.Context(), middleware.CurrentUserID(c), c.Query("sortBy"), c.Query("order"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.List(c, items, len(items))
}

// PATCH /vocab/:id/favorite
func (h *Handler) setFavorite(c *gin.Context) {
	var dto FavoriteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.SetFavorite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), dto.IsFavorite)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, t)
}

// PATCH /vocab/:id/difficulty
func (h *Handler) setDifficulty(c *gin.Context) {
	var dto DifficultyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deleted, t, err := h.svc.SetDifficulty(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), dto.Level)
	if err != nil {
		h.fail(c, err)
		return
	}
	if deleted {
		response.OKMsg(c, "Word marked as learned and removed", nil)
		return
	}
	response.OK(c, t)
}

// DELETE /vocab/:id
func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, errNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	response.InternalError(c, err)
}
