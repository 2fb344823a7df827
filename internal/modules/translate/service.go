package translate

import (
	"context"
	"errors"
	"strings"

	"github.com/wordbridge/core/internal/models"
	"github.com/wordbridge/core/internal/pkg/session"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TranslationStore is the persistence contract the orchestrator needs.
type TranslationStore interface {
	FindExisting(ctx context.Context, word, srcLang, targetLang, userID string) (*models.SavedTranslation, error)
	Create(ctx context.Context, t *models.SavedTranslation) error
}

// Service is the cache-aside translation orchestrator. It is stateless
// between requests; all durable state lives in the cache and the store.
type Service struct {
	cache      *TieredCache
	engine     Engine
	store      TranslationStore
	guestLimit int
	log        *zap.Logger
}

// NewService wires the orchestrator's collaborators.
func NewService(cache *TieredCache, engine Engine, store TranslationStore, guestLimit int, log *zap.Logger) *Service {
	if guestLimit <= 0 {
		guestLimit = 2
	}
	return &Service{cache: cache, engine: engine, store: store, guestLimit: guestLimit, log: log}
}

// TranslateAndSave walks the request through: validation, tiered cache
// lookup, engine call, guest limiting, single-word persistence policy,
// idempotent lookup-or-create, and write-through to all cache tiers.
// userID is empty for guests; sess backs the guest quota.
func (s *Service) TranslateAndSave(ctx context.Context, req Request, sess *session.Session, userID string) (*Outcome, error) {
	if req.Word == "" || req.SrcLang == "" || req.TargetLang == "" {
		return nil, ErrInvalidInput
	}

	// A cache hit is free for guests and users alike: no engine call,
	// no store access, no quota consumed.
	if entry, tier, err := s.cache.Lookup(ctx, req.Word, req.SrcLang, req.TargetLang); err != nil {
		s.log.Warn("cache lookup failed, treating as miss", zap.Error(err))
	} else if entry != nil {
		s.log.Debug("cache hit",
			zap.String("word", req.Word),
			zap.String("tier", string(tier)),
		)
		return &Outcome{Entry: *entry, Source: "cache", Tier: tier}, nil
	}

	result, err := s.engine.Translate(ctx, req.Word, req.Paragraph, req.SrcLang, req.TargetLang)
	if err != nil {
		var engErr *EngineError
		if errors.As(err, &engErr) {
			if engErr.Kind == KindQuota {
				return nil, &UnavailableError{Message: engErr.Message}
			}
			return nil, &NoTranslationError{Message: engErr.Message}
		}
		return nil, &NoTranslationError{Message: err.Error()}
	}

	entry := Entry{
		Original:       req.Word,
		Translation:    result.Translation,
		Definition:     result.Definition,
		Examples:       result.Examples,
		SynonymsSource: result.SynonymsSource,
		SynonymsTarget: result.SynonymsTarget,
	}

	// Guests never populate the cache or the store, even after a
	// successful engine call.
	if userID == "" {
		if sess == nil {
			sess = session.New("")
		}
		decision := CheckGuestLimit(sess, s.guestLimit)
		if !decision.Allowed {
			return nil, &LimitExceededError{Limit: s.guestLimit}
		}
		return &Outcome{Entry: entry, Source: "engine", Guest: true, GuestCount: decision.Count}, nil
	}

	// Only single-word lookups are saved as vocabulary entries; the
	// cache is reserved for them as well.
	if len(strings.Fields(req.Word)) > 1 {
		return &Outcome{Entry: entry, Source: "engine", Phrase: true}, nil
	}

	existing, err := s.store.FindExisting(ctx, req.Word, req.SrcLang, req.TargetLang, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.existingOutcome(ctx, req, existing), nil
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	saved := &models.SavedTranslation{
		Word:           req.Word,
		Translation:    result.Translation,
		SrcLang:        req.SrcLang,
		TargetLang:     req.TargetLang,
		UserID:         oid,
		IsFavorite:     req.IsFavorite,
		Definition:     result.Definition,
		Examples:       result.Examples,
		SynonymsSource: result.SynonymsSource,
		SynonymsTarget: result.SynonymsTarget,
	}
	if err := s.store.Create(ctx, saved); err != nil {
		if errors.Is(err, ErrDuplicateEntry) {
			// Lost the race to a concurrent identical request; serve
			// the record that won.
			existing, findErr := s.store.FindExisting(ctx, req.Word, req.SrcLang, req.TargetLang, userID)
			if findErr == nil && existing != nil {
				return s.existingOutcome(ctx, req, existing), nil
			}
		}
		return nil, err
	}

	savedEntry := entryFromModel(saved)
	s.writeThrough(ctx, req, &savedEntry)

	return &Outcome{
		Entry:      savedEntry,
		Source:     "engine",
		IsFavorite: saved.IsFavorite,
		Level:      saved.Level,
		Saved:      saved,
	}, nil
}

// existingOutcome answers from the stored record, never the fresh engine
// result, and backfills the cache tiers so repeat lookups stop hitting
// the store.
func (s *Service) existingOutcome(ctx context.Context, req Request, existing *models.SavedTranslation) *Outcome {
	entry := entryFromModel(existing)
	s.writeThrough(ctx, req, &entry)
	return &Outcome{
		Entry:         entry,
		Source:        "engine",
		AlreadyExists: true,
		IsFavorite:    existing.IsFavorite,
		Level:         existing.Level,
	}
}

// writeThrough populates all cache tiers; failures are logged and
// swallowed (fail-open).
func (s *Service) writeThrough(ctx context.Context, req Request, entry *Entry) {
	if err := s.cache.SetAll(ctx, req.Word, req.SrcLang, req.TargetLang, entry); err != nil {
		s.log.Warn("cache write-through failed",
			zap.String("word", req.Word),
			zap.Error(err),
		)
	}
}
