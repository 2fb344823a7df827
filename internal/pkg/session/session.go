// Package session provides cookie-backed guest sessions. Session state
// lives in Redis under a per-session key with a rolling TTL; handlers get
// a request-scoped Session value instead of reaching into framework state.
package session

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cookieName = "wb_sid"
	contextKey = "guest_session"

	fieldGuestCount = "guest_translation_count"
)

// Session is the mutable per-client state bag for one request.
type Session struct {
	id         string
	guestCount int
	dirty      bool
}

// New returns a detached session, useful in tests.
func New(id string) *Session { return &Session{id: id} }

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// GuestTranslationCount returns how many guest translations this session
// has consumed.
func (s *Session) GuestTranslationCount() int { return s.guestCount }

// SetGuestTranslationCount updates the consumed count; persisted by the
// middleware after the handler returns.
func (s *Session) SetGuestTranslationCount(n int) {
	s.guestCount = n
	s.dirty = true
}

// Store loads and saves sessions in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given session lifetime.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (st *Store) key(id string) string { return "wb:session:" + id }

// Load fetches the session for id; an unknown id yields a fresh session.
// A replaced session starts with a zero count.
func (st *Store) Load(ctx context.Context, id string) (*Session, error) {
	s := &Session{id: id}
	val, err := st.rdb.HGet(ctx, st.key(id), fieldGuestCount).Result()
	if err == redis.Nil {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if n, convErr := strconv.Atoi(val); convErr == nil {
		s.guestCount = n
	}
	return s, nil
}

// Save writes dirty session state back and refreshes the TTL.
func (st *Store) Save(ctx context.Context, s *Session) error {
	if !s.dirty {
		return nil
	}
	key := st.key(s.id)
	pipe := st.rdb.TxPipeline()
	pipe.HSet(ctx, key, fieldGuestCount, s.guestCount)
	pipe.Expire(ctx, key, st.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Middleware ensures every request carries a session cookie and exposes
// the loaded Session on the gin context. A session-store outage degrades
// to a fresh in-memory session rather than failing the request.
func (st *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			id = uuid.New().String()
			c.SetCookie(cookieName, id, int(st.ttl.Seconds()), "/", "", false, true)
		}

		sess, loadErr := st.Load(c.Request.Context(), id)
		if loadErr != nil {
			sess = New(id)
		}
		c.Set(contextKey, sess)

		c.Next()

		if loadErr == nil {
			_ = st.Save(c.Request.Context(), sess)
		}
	}
}

// FromContext extracts the request's session. Returns nil when the
// middleware did not run.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
