package biz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

// Enricher derives device, source and country from the raw visitor metadata.
type Enricher interface {
	Enrich(meta domain.VisitorMetadata) domain.VisitorMetadata
}

// ClickLedger counts clicks, deduplicates visitors and triggers attribution.
type ClickLedger struct {
	links      domain.LinkRepository
	campaigns  domain.CampaignRepository
	clicks     domain.ClickRepository
	dedup      domain.DedupStore
	uow        domain.UnitOfWork
	attributor *RewardAttributor
	enricher   Enricher
	dedupTTL   time.Duration
	log        *log.Helper
}

// NewClickLedger creates a new ClickLedger.
func NewClickLedger(
	links domain.LinkRepository,
	campaigns domain.CampaignRepository,
	clicks domain.ClickRepository,
	dedup domain.DedupStore,
	uow domain.UnitOfWork,
	attributor *RewardAttributor,
	enricher Enricher,
	c *conf.Promoter,
	logger log.Logger,
) *ClickLedger {
	return &ClickLedger{
		links:      links,
		campaigns:  campaigns,
		clicks:     clicks,
		dedup:      dedup,
		uow:        uow,
		attributor: attributor,
		enricher:   enricher,
		dedupTTL:   c.DedupTtl.AsDuration(),
		log:        log.NewHelper(log.With(logger, "module", "biz/ledger")),
	}
}

// RecordClick records one resolved click. Unknown codes are ignored.
//
// The view counters, the payout and the click event are written in a single
// transaction together with their outbox events. When that transaction fails
// after the visitor was marked unique, the mark is released again.
func (l *ClickLedger) RecordClick(ctx context.Context, code string, meta domain.VisitorMetadata) error {
	sc, err := domain.NewShortCode(code)
	if err != nil {
		return nil
	}

	lc, err := l.links.FindWithCampaign(ctx, sc)
	if errors.Is(err, domain.ErrLinkNotFound) {
		l.log.WithContext(ctx).Debugf("click on unknown link %s ignored", code)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load link %s: %w", code, err)
	}
	if lc.Campaign == nil || !lc.HasAgent {
		return fmt.Errorf("%w: link %s references a missing campaign or agent", domain.ErrDataIntegrity, code)
	}

	if l.enricher != nil {
		meta = l.enricher.Enrich(meta)
	}

	fingerprint := meta.Fingerprint()
	unique, err := l.dedup.MarkIfAbsent(ctx, code, fingerprint, l.dedupTTL)
	if err != nil {
		l.log.WithContext(ctx).Warnf("dedup store unavailable, counting %s as a plain view: %v", code, err)
		unique = false
	}

	link := lc.Link
	click := domain.NewClickEvent(link, unique, meta)
	err = l.uow.Do(ctx, func(ctx context.Context) error {
		_, uniqueViews, err := l.links.IncrementViews(ctx, sc, unique)
		if err != nil {
			return err
		}
		if err := l.campaigns.IncrementViews(ctx, link.CampaignID(), unique); err != nil {
			return err
		}

		if unique {
			click.ReachedMilestone(uniqueViews-1, uniqueViews)

			reward, err := l.attributor.Attribute(ctx, link.CampaignID(), link.AgentID())
			if err != nil {
				return err
			}
			click.Attribute(reward.Outcome, reward.Payout, reward.Points, reward.Spent)
		}

		return l.clicks.Append(ctx, click)
	}, click)
	if err != nil {
		if unique {
			if ferr := l.dedup.Forget(ctx, code, fingerprint); ferr != nil {
				l.log.WithContext(ctx).Errorf("release dedup mark of %s: %v", code, ferr)
			}
		}
		return fmt.Errorf("record click on %s: %w", code, err)
	}
	return nil
}
