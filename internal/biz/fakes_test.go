package biz

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"
	"go-promoter/internal/domain/event"
)

type fakeTxKey struct{}

func inFakeTx(ctx context.Context) bool {
	return ctx.Value(fakeTxKey{}) != nil
}

// fakeUnitOfWork runs fn in a fake transaction and collects the events it would store.
type fakeUnitOfWork struct {
	mu     sync.Mutex
	err    error
	events []event.Event
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error, aggregates ...domain.AggregateRoot) error {
	if u.err != nil {
		return u.err
	}
	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, a := range aggregates {
		u.events = append(u.events, a.Events()...)
		a.ClearEvents()
	}
	return nil
}

func (u *fakeUnitOfWork) eventNames() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	names := make([]string, 0, len(u.events))
	for _, e := range u.events {
		names = append(names, e.EventName())
	}
	return names
}

type fakeCampaignRepo struct {
	mu         sync.Mutex
	items      map[string]*domain.Campaign
	saveErr    error
	reserveErr error
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{items: make(map[string]*domain.Campaign)}
}

func (r *fakeCampaignRepo) Save(_ context.Context, c *domain.Campaign) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID()] = domain.ReconstructCampaign(c.Snapshot())
	return nil
}

func (r *fakeCampaignRepo) UpdateStatus(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[c.ID()]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	s := stored.Snapshot()
	s.Status = c.Status()
	r.items[c.ID()] = domain.ReconstructCampaign(s)
	return nil
}

func (r *fakeCampaignRepo) FindByID(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	return domain.ReconstructCampaign(c.Snapshot()), nil
}

func (r *fakeCampaignRepo) ListByTenant(_ context.Context, tenantID string, status domain.CampaignStatus) ([]*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Campaign
	for _, c := range r.items {
		if c.TenantID() == tenantID && (status == "" || c.Status() == status) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return out, nil
}

func (r *fakeCampaignRepo) IncrementViews(_ context.Context, id string, unique bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	s := c.Snapshot()
	s.TotalViews++
	if unique {
		s.TotalUniqueViews++
	}
	r.items[id] = domain.ReconstructCampaign(s)
	return nil
}

func (r *fakeCampaignRepo) ReserveBudget(ctx context.Context, id string) (*domain.BudgetReservation, error) {
	if !inFakeTx(ctx) {
		return nil, domain.ErrNoTransaction
	}
	if r.reserveErr != nil {
		return nil, r.reserveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	s := c.Snapshot()
	if s.Status != domain.CampaignActive || s.Spent+s.PayoutPerView > s.BudgetCap {
		return nil, nil
	}
	s.Spent += s.PayoutPerView
	r.items[id] = domain.ReconstructCampaign(s)
	return &domain.BudgetReservation{Payout: s.PayoutPerView, Points: s.PointsPerView, Spent: s.Spent}, nil
}

func (r *fakeCampaignRepo) Status(_ context.Context, id string) (domain.CampaignStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return "", domain.ErrCampaignNotFound
	}
	return c.Status(), nil
}

type fakeAgentRepo struct {
	mu        sync.Mutex
	items     map[string]*domain.Agent
	creditErr error
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{items: make(map[string]*domain.Agent)}
}

func (r *fakeAgentRepo) Save(_ context.Context, a *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAgentRepo) FindByID(_ context.Context, id string) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAgentRepo) Credit(_ context.Context, id string, amount domain.Money, points int64) error {
	if r.creditErr != nil {
		return r.creditErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	a.Balance += amount
	a.Points += points
	return nil
}

func (r *fakeAgentRepo) TopByPoints(_ context.Context, tenantID string, limit int) ([]*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Agent
	for _, a := range r.items {
		if a.TenantID == tenantID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLinkRepo struct {
	mu         sync.Mutex
	items      map[string]*domain.TrackingLink
	campaigns  *fakeCampaignRepo
	agents     *fakeAgentRepo
	findErr    error
	createErrs []error
	finds      int
	earned     map[string]domain.Money
}

func newFakeLinkRepo(campaigns *fakeCampaignRepo, agents *fakeAgentRepo) *fakeLinkRepo {
	return &fakeLinkRepo{
		items:     make(map[string]*domain.TrackingLink),
		earned:    make(map[string]domain.Money),
		campaigns: campaigns,
		agents:    agents,
	}
}

func (r *fakeLinkRepo) Create(_ context.Context, link *domain.TrackingLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	if _, ok := r.items[link.ShortCode().String()]; ok {
		return domain.ErrShortCodeExists
	}
	for _, l := range r.items {
		if l.CampaignID() == link.CampaignID() && l.AgentID() == link.AgentID() {
			return domain.ErrAlreadyJoined
		}
	}
	r.items[link.ShortCode().String()] = link
	return nil
}

func (r *fakeLinkRepo) FindWithCampaign(ctx context.Context, code domain.ShortCode) (*domain.LinkWithCampaign, error) {
	r.mu.Lock()
	r.finds++
	findErr := r.findErr
	link, ok := r.items[code.String()]
	r.mu.Unlock()
	if findErr != nil {
		return nil, findErr
	}
	if !ok {
		return nil, domain.ErrLinkNotFound
	}

	lc := &domain.LinkWithCampaign{Link: link}
	if c, err := r.campaigns.FindByID(ctx, link.CampaignID()); err == nil {
		lc.Campaign = c
	}
	if _, err := r.agents.FindByID(ctx, link.AgentID()); err == nil {
		lc.HasAgent = true
	}
	return lc, nil
}

func (r *fakeLinkRepo) FindByCampaignAndAgent(_ context.Context, campaignID, agentID string) (*domain.TrackingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.items {
		if l.CampaignID() == campaignID && l.AgentID() == agentID {
			return l, nil
		}
	}
	return nil, domain.ErrLinkNotFound
}

func (r *fakeLinkRepo) ListByAgent(_ context.Context, agentID string) ([]*domain.TrackingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.TrackingLink
	for _, l := range r.items {
		if l.AgentID() == agentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) StatsByCampaign(ctx context.Context, campaignID string) ([]*domain.LinkStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.LinkStats
	for _, l := range r.items {
		if l.CampaignID() != campaignID {
			continue
		}
		name := ""
		if a, err := r.agents.FindByID(ctx, l.AgentID()); err == nil {
			name = a.Name
		}
		out = append(out, &domain.LinkStats{
			ShortCode:       l.ShortCode().String(),
			AgentID:         l.AgentID(),
			AgentName:       name,
			ViewCount:       l.ViewCount(),
			UniqueViewCount: l.UniqueViewCount(),
			Earned:          r.earned[l.ShortCode().String()],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniqueViewCount > out[j].UniqueViewCount })
	return out, nil
}

func (r *fakeLinkRepo) Exists(_ context.Context, code domain.ShortCode) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[code.String()]
	return ok, nil
}

func (r *fakeLinkRepo) IncrementViews(_ context.Context, code domain.ShortCode, unique bool) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[code.String()]
	if !ok {
		return 0, 0, domain.ErrLinkNotFound
	}
	views, uniqueViews := l.ViewCount()+1, l.UniqueViewCount()
	if unique {
		uniqueViews++
	}
	r.items[code.String()] = domain.ReconstructTrackingLink(l.ShortCode(), l.CampaignID(), l.AgentID(), views, uniqueViews, l.CreatedAt())
	return views, uniqueViews, nil
}

type fakeClickRepo struct {
	mu        sync.Mutex
	items     []*domain.ClickEvent
	appendErr error
}

func (r *fakeClickRepo) Append(_ context.Context, c *domain.ClickEvent) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, c)
	return nil
}

func (r *fakeClickRepo) ListByShortCode(_ context.Context, code string) ([]*domain.ClickEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ClickEvent
	for _, c := range r.items {
		if c.ShortCode == code {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeLinkCache struct {
	mu     sync.Mutex
	items  map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeLinkCache() *fakeLinkCache {
	return &fakeLinkCache{items: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *fakeLinkCache) Get(_ context.Context, code string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[code], nil
}

func (c *fakeLinkCache) Set(_ context.Context, code, destination string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[code] = destination
	c.ttls[code] = ttl
	return nil
}

func (c *fakeLinkCache) Invalidate(_ context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, code)
	return nil
}

type fakeDedupStore struct {
	mu        sync.Mutex
	marks     map[string]bool
	markErr   error
	forgotten []string
}

func newFakeDedupStore() *fakeDedupStore {
	return &fakeDedupStore{marks: make(map[string]bool)}
}

func (s *fakeDedupStore) MarkIfAbsent(_ context.Context, code, fingerprint string, _ time.Duration) (bool, error) {
	if s.markErr != nil {
		return false, s.markErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := code + ":" + fingerprint
	if s.marks[key] {
		return false, nil
	}
	s.marks[key] = true
	return true, nil
}

func (s *fakeDedupStore) Forget(_ context.Context, code, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := code + ":" + fingerprint
	delete(s.marks, key)
	s.forgotten = append(s.forgotten, key)
	return nil
}

type fakeClickCounter struct {
	mu     sync.Mutex
	links  map[string]int64
	agents map[string]int64
	err    error
}

func newFakeClickCounter() *fakeClickCounter {
	return &fakeClickCounter{links: make(map[string]int64), agents: make(map[string]int64)}
}

func (c *fakeClickCounter) IncrLink(_ context.Context, code string) error {
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links[code]++
	return nil
}

func (c *fakeClickCounter) IncrAgent(_ context.Context, agentID string) error {
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agents[agentID]++
	return nil
}

func (c *fakeClickCounter) LinkClicks(_ context.Context, code string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.links[code], nil
}

type staticEnricher struct{}

func (staticEnricher) Enrich(meta domain.VisitorMetadata) domain.VisitorMetadata {
	meta.Device = "Desktop"
	meta.Source = "Direct"
	return meta
}

// fixture wires the biz components over the fakes.
type fixture struct {
	uow       *fakeUnitOfWork
	campaigns *fakeCampaignRepo
	agents    *fakeAgentRepo
	links     *fakeLinkRepo
	clicks    *fakeClickRepo
	cache     *fakeLinkCache
	dedup     *fakeDedupStore
	counter   *fakeClickCounter
	conf      *conf.Promoter
}

func newFixture() *fixture {
	campaigns := newFakeCampaignRepo()
	agents := newFakeAgentRepo()
	return &fixture{
		uow:       &fakeUnitOfWork{},
		campaigns: campaigns,
		agents:    agents,
		links:     newFakeLinkRepo(campaigns, agents),
		clicks:    &fakeClickRepo{},
		cache:     newFakeLinkCache(),
		dedup:     newFakeDedupStore(),
		counter:   newFakeClickCounter(),
		conf:      (&conf.Promoter{}).Defaults(),
	}
}

func (f *fixture) campaign(tenantID string, payout, budget domain.Money) *domain.Campaign {
	target, err := domain.NewTargetURL("https://example.com/landing")
	if err != nil {
		panic(err)
	}
	c, err := domain.NewCampaign(domain.CampaignParams{
		TenantID:      tenantID,
		Name:          "campaign",
		TargetURL:     target,
		PayoutPerView: payout,
		PointsPerView: 5,
		BudgetCap:     budget,
	})
	if err != nil {
		panic(err)
	}
	_ = f.campaigns.Save(context.Background(), c)
	c.ClearEvents()
	return c
}

func (f *fixture) agent(tenantID, phone string) *domain.Agent {
	a := domain.NewAgent(tenantID, "agent "+phone, phone)
	_ = f.agents.Save(context.Background(), a)
	return a
}

func (f *fixture) link(code, campaignID, agentID string) *domain.TrackingLink {
	sc, err := domain.NewShortCode(code)
	if err != nil {
		panic(err)
	}
	l := domain.NewTrackingLink(sc, campaignID, agentID)
	l.ClearEvents()
	_ = f.links.Create(context.Background(), l)
	return l
}
