package translate

import "context"

// ErrorKind classifies engine failures so the orchestrator never has to
// sniff error strings.
type ErrorKind int

const (
	// KindGeneric means the engine could not produce a usable translation.
	KindGeneric ErrorKind = iota
	// KindQuota means the upstream provider rejected the call for rate or
	// quota reasons; the condition is retryable.
	KindQuota
)

// EngineError is a tagged engine failure.
type EngineError struct {
	Kind    ErrorKind
	Message string
}

func (e *EngineError) Error() string { return e.Message }

// EngineResult is a successful dictionary-style translation.
type EngineResult struct {
	Translation    string
	Definition     string
	Examples       []string
	SynonymsSource []string
	SynonymsTarget []string
}

// Engine is the opaque translation capability. Implementations return
// either an EngineResult or an *EngineError.
type Engine interface {
	Translate(ctx context.Context, word, paragraph, srcLang, targetLang string) (*EngineResult, error)
}
