package translate

import (
	"fmt"
	"time"
)

// Tier identifies one cache tier. Each tier holds the same payload under
// its own key with its own TTL, so a slower tier can keep serving after
// the faster ones expired.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// tierOrder is the lookup cascade, nearest first.
var tierOrder = [...]Tier{TierHot, TierWarm, TierCold}

var tierTTL = map[Tier]time.Duration{
	TierHot:  time.Hour,
	TierWarm: 24 * time.Hour,
	TierCold: 7 * 24 * time.Hour,
}

// BuildKey maps (tier, word, srcLang, targetLang) to the Redis hash key
// for that tier. Deterministic; the word is used verbatim, so callers
// must pass a consistent representation.
func BuildKey(tier Tier, word, srcLang, targetLang string) string {
	return fmt.Sprintf("%scache:translation:%s:%s:%s", tier, word, srcLang, targetLang)
}
