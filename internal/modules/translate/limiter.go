package translate

import "github.com/wordbridge/core/internal/pkg/session"

// GuestDecision is the result of consuming one guest quota slot.
type GuestDecision struct {
	Allowed bool
	Count   int
}

// CheckGuestLimit consumes one translation from the session's guest
// quota. At or above the limit the request is rejected and the count is
// left untouched; otherwise the count is incremented and reported back.
func CheckGuestLimit(sess *session.Session, limit int) GuestDecision {
	count := sess.GuestTranslationCount()
	if count >= limit {
		return GuestDecision{Allowed: false, Count: count}
	}
	count++
	sess.SetGuestTranslationCount(count)
	return GuestDecision{Allowed: true, Count: count}
}
