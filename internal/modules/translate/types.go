package translate

import (
	"errors"
	"fmt"

	"github.com/wordbridge/core/internal/models"
)

// Entry is the canonical translation record shape. It is the single
// serialization boundary for the cache tiers and for API payloads, so
// every call site agrees on field names.
type Entry struct {
	ID             string   `json:"id,omitempty"`
	Original       string   `json:"original"`
	Translation    string   `json:"translation"`
	Definition     string   `json:"definition,omitempty"`
	Examples       []string `json:"examples,omitempty"`
	SynonymsSource []string `json:"synonyms_src,omitempty"`
	SynonymsTarget []string `json:"synonyms_target,omitempty"`
}

func entryFromModel(t *models.SavedTranslation) Entry {
	return Entry{
		ID:             t.ID.Hex(),
		Original:       t.Word,
		Translation:    t.Translation,
		Definition:     t.Definition,
		Examples:       t.Examples,
		SynonymsSource: t.SynonymsSource,
		SynonymsTarget: t.SynonymsTarget,
	}
}

// Request carries one translation request through the orchestrator.
type Request struct {
	Word       string
	Paragraph  string
	SrcLang    string
	TargetLang string
	IsFavorite bool
}

// Outcome is the orchestrator's uniform success result. Handlers shape
// the HTTP payload from it.
type Outcome struct {
	Entry         Entry
	Source        string // "cache" | "engine"
	Tier          Tier   // tier that served a cache hit, informational
	Phrase        bool   // multi-word input, never persisted or cached
	GuestCount    int    // consumed guest quota, guest path only
	Guest         bool
	AlreadyExists bool
	IsFavorite    bool
	Level         string
	Saved         *models.SavedTranslation
}

// ErrInvalidInput is returned when word, srcLang or targetLang is missing.
var ErrInvalidInput = errors.New("word, srcLang and targetLang are required")

// UnavailableError maps engine quota exhaustion to a retryable condition.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// NoTranslationError maps a generic engine failure to a terminal condition.
type NoTranslationError struct {
	Message string
}

func (e *NoTranslationError) Error() string { return e.Message }

// LimitExceededError is returned when a guest session is out of quota.
type LimitExceededError struct {
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("guest translation limit of %d reached", e.Limit)
}
