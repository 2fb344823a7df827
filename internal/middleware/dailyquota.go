package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wordbridge/core/internal/pkg/response"
)

// DailyCounter reports how many translations a user saved since a point
// in time.
type DailyCounter interface {
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

// DailyQuota blocks authenticated users who reached their per-day saved
// translation limit. Guests are handled by the session-scoped guest
// limiter instead and pass through here.
func DailyQuota(counter DailyCounter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		count, err := counter.CountSince(c.Request.Context(), userID, startOfDay)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if count >= int64(limit) {
			response.TooManyRequests(c, fmt.Sprintf("You have reached your daily limit of %d translations.", limit))
			return
		}
		c.Next()
	}
}
