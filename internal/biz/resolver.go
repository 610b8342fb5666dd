package biz

import (
	"context"
	"time"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

// LinkResolver maps short codes to destinations, cache first.
type LinkResolver struct {
	links domain.LinkRepository
	cache domain.LinkCache
	ttl   time.Duration
	log   *log.Helper
}

// NewLinkResolver creates a new LinkResolver.
func NewLinkResolver(links domain.LinkRepository, cache domain.LinkCache, c *conf.Promoter, logger log.Logger) *LinkResolver {
	return &LinkResolver{
		links: links,
		cache: cache,
		ttl:   c.CacheTtl.AsDuration(),
		log:   log.NewHelper(log.With(logger, "module", "biz/resolver")),
	}
}

// Resolve returns the destination URL of code, or domain.ErrLinkNotFound.
// A cache failure is logged and treated as a miss.
func (r *LinkResolver) Resolve(ctx context.Context, code string) (string, error) {
	sc, err := domain.NewShortCode(code)
	if err != nil {
		return "", domain.ErrLinkNotFound
	}

	dest, err := r.cache.Get(ctx, code)
	if err != nil {
		r.log.WithContext(ctx).Warnf("link cache get %s: %v", code, err)
	} else if dest != "" {
		return dest, nil
	}

	lc, err := r.links.FindWithCampaign(ctx, sc)
	if err != nil {
		return "", err
	}
	dest = lc.Destination()
	if dest == "" {
		return "", domain.ErrLinkNotFound
	}

	if err := r.cache.Set(ctx, code, dest, r.ttl); err != nil {
		r.log.WithContext(ctx).Warnf("link cache set %s: %v", code, err)
	}
	return dest, nil
}
