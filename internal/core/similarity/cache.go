package similarity

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agenthands/scorecard/internal/core/common"
)

// Cached memoizes an Oracle by the ordered pair of normalized names. The same
// pair recurs across scoring calls within one experiment run, and for the
// semantic oracle each miss is a paid model call.
type Cached struct {
	inner Oracle
	cache *gocache.Cache
}

func NewCached(inner Oracle, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) Similarity(ctx context.Context, a, b string) float64 {
	key := common.NormalizeName(a) + "\x1f" + common.NormalizeName(b)
	if v, ok := c.cache.Get(key); ok {
		return v.(float64)
	}

	score := c.inner.Similarity(ctx, a, b)
	c.cache.SetDefault(key, score)
	return score
}
