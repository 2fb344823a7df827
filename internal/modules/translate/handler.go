package translate

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/wordbridge/core/internal/middleware"
	"github.com/wordbridge/core/internal/pkg/response"
	"github.com/wordbridge/core/internal/pkg/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the translate endpoint. dailyQuotaMW applies the
// per-day saved-translation cap for authenticated users.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, dailyQuotaMW gin.HandlerFunc) {
	rg.POST("/translate", dailyQuotaMW, h.translate)
}

// TranslateDTO is the request body for POST /translate.
type TranslateDTO struct {
	Word       string `json:"word"`
	Paragraph  string `json:"paragraph"`
	SrcLang    string `json:"srcLang"`
	TargetLang string `json:"targetLang"`
	IsFavorite bool   `json:"isFavorite"`
}

// POST /translate
func (h *Handler) translate(c *gin.Context) {
	var dto TranslateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	outcome, err := h.svc.TranslateAndSave(
		c.Request.Context(),
		Request{
			Word:       dto.Word,
			Paragraph:  dto.Paragraph,
			SrcLang:    dto.SrcLang,
			TargetLang: dto.TargetLang,
			IsFavorite: dto.IsFavorite,
		},
		session.FromContext(c),
		middleware.CurrentUserID(c),
	)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch {
	case outcome.Source == "cache":
		response.OK(c, cachePayload(outcome))
	case outcome.Guest:
		response.OK(c, gin.H{
			"original":    outcome.Entry.Original,
			"translation": outcome.Entry.Translation,
			"count":       outcome.GuestCount,
		})
	case outcome.Phrase:
		response.OK(c, gin.H{
			"original":    outcome.Entry.Original,
			"translation": outcome.Entry.Translation,
			"message":     "Translation completed (not saved - full sentence)",
		})
	case outcome.AlreadyExists:
		response.OKMsg(c, "Translation already exists", gin.H{
			"id":              outcome.Entry.ID,
			"original":        outcome.Entry.Original,
			"translation":     outcome.Entry.Translation,
			"isFavorite":      outcome.IsFavorite,
			"definition":      outcome.Entry.Definition,
			"examples":        outcome.Entry.Examples,
			"synonyms_src":    outcome.Entry.SynonymsSource,
			"synonyms_target": outcome.Entry.SynonymsTarget,
		})
	default:
		response.OK(c, gin.H{
			"id":              outcome.Entry.ID,
			"original":        outcome.Entry.Original,
			"translation":     outcome.Entry.Translation,
			"level":           outcome.Level,
			"isFavorite":      outcome.IsFavorite,
			"definition":      outcome.Entry.Definition,
			"examples":        outcome.Entry.Examples,
			"synonyms_src":    outcome.Entry.SynonymsSource,
			"synonyms_target": outcome.Entry.SynonymsTarget,
		})
	}
}

func cachePayload(outcome *Outcome) gin.H {
	data := gin.H{
		"original":    outcome.Entry.Original,
		"translation": outcome.Entry.Translation,
		"source":      "cache",
	}
	if outcome.Entry.ID != "" {
		data["id"] = outcome.Entry.ID
	}
	if outcome.Entry.Definition != "" {
		data["definition"] = outcome.Entry.Definition
	}
	if len(outcome.Entry.Examples) > 0 {
		data["examples"] = outcome.Entry.Examples
	}
	if len(outcome.Entry.SynonymsSource) > 0 {
		data["synonyms_src"] = outcome.Entry.SynonymsSource
	}
	if len(outcome.Entry.SynonymsTarget) > 0 {
		data["synonyms_target"] = outcome.Entry.SynonymsTarget
	}
	return data
}

func (h *Handler) fail(c *gin.Context, err error) {
	var (
		unavailable *UnavailableError
		noTrans     *NoTranslationError
		limit       *LimitExceededError
	)
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.BadRequest(c, "Please provide word, srcLang and targetLang")
	case errors.As(err, &unavailable):
		response.ServiceUnavailable(c, "Translation service is temporarily unavailable due to rate limits. Please try again in a minute.")
	case errors.As(err, &limit):
		response.Forbidden(c, fmt.Sprintf(
			"You have reached the maximum limit of %d translations as a guest. Please log in for more translations.",
			limit.Limit,
		))
	case errors.As(err, &noTrans):
		response.InternalError(c, errors.New("Can't find a proper translation"))
	default:
		response.InternalError(c, err)
	}
}
