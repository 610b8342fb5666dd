package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// IntegrationTestSuite runs the repositories against real PostgreSQL and Redis.
type IntegrationTestSuite struct {
	suite.Suite
	ctx            context.Context
	pgContainer    *postgres.PostgresContainer
	redisContainer *tcredis.RedisContainer
	data           *Data
	cleanup        func()
	uow            domain.UnitOfWork
	campaigns      domain.CampaignRepository
	agents         domain.AgentRepository
	links          domain.LinkRepository
	dedup          domain.DedupStore
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgContainer, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgContainer = pgContainer

	redisContainer, err := tcredis.Run(s.ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.redisContainer = redisContainer

	pgConnStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	redisEndpoint, err := redisContainer.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	s.data, s.cleanup, err = NewData(&conf.Data{
		Database: &conf.Data_Database{Driver: "postgres", Source: pgConnStr},
		Redis:    &conf.Data_Redis{Addr: redisEndpoint},
	}, log.DefaultLogger)
	s.Require().NoError(err)
	s.Require().NotNil(s.data.Redis())

	s.uow = newTestUoW(s.data)
	s.campaigns = NewCampaignRepo(s.data, log.DefaultLogger)
	s.agents = NewAgentRepo(s.data, log.DefaultLogger)
	s.links = NewLinkRepo(s.data, log.DefaultLogger)
	s.dedup = NewDedupStore(s.data, log.DefaultLogger)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.cleanup != nil {
		s.cleanup()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
	if s.redisContainer != nil {
		_ = s.redisContainer.Terminate(s.ctx)
	}
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) TestReserveBudget_ConcurrentReservationsNeverOverspend() {
	// Arrange: room for exactly 7 payouts
	c := seedCampaign(s.T(), s.campaigns, "tenant-int", 300, 2100)
	const workers = 25

	// Act
	var (
		mu      sync.Mutex
		applied int
		wg      sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.uow.Do(s.ctx, func(ctx context.Context) error {
				r, err := s.campaigns.ReserveBudget(ctx, c.ID())
				if err != nil || r == nil {
					return err
				}
				mu.Lock()
				applied++
				mu.Unlock()
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	// Assert
	s.Equal(7, applied)
	found, err := s.campaigns.FindByID(s.ctx, c.ID())
	s.Require().NoError(err)
	s.Equal(domain.Money(2100), found.Spent())
}

func (s *IntegrationTestSuite) TestFindWithCampaign() {
	// Arrange
	c := seedCampaign(s.T(), s.campaigns, "tenant-int", 300, 1000)
	a := seedAgent(s.T(), s.agents, "tenant-int", "+19990000001")
	seedLink(s.T(), s.links, "intA01", c.ID(), a.ID)
	code, _ := domain.NewShortCode("intA01")

	// Act
	found, err := s.links.FindWithCampaign(s.ctx, code)

	// Assert
	s.Require().NoError(err)
	s.True(found.HasAgent)
	s.Equal(c.ID(), found.Campaign.ID())
	s.Equal("https://example.com/landing", found.Destination())
}

func (s *IntegrationTestSuite) TestLinkConflicts() {
	c := seedCampaign(s.T(), s.campaigns, "tenant-int", 300, 1000)
	a := seedAgent(s.T(), s.agents, "tenant-int", "+19990000002")
	b := seedAgent(s.T(), s.agents, "tenant-int", "+19990000003")
	link := seedLink(s.T(), s.links, "intB01", c.ID(), a.ID)

	other, _ := domain.NewShortCode("intB02")
	s.ErrorIs(s.links.Create(s.ctx, domain.NewTrackingLink(link.ShortCode(), c.ID(), b.ID)), domain.ErrShortCodeExists)
	s.ErrorIs(s.links.Create(s.ctx, domain.NewTrackingLink(other, c.ID(), a.ID)), domain.ErrAlreadyJoined)
}

func (s *IntegrationTestSuite) TestIncrementViews_Concurrent() {
	c := seedCampaign(s.T(), s.campaigns, "tenant-int", 0, 0)
	a := seedAgent(s.T(), s.agents, "tenant-int", "+19990000004")
	link := seedLink(s.T(), s.links, "intC01", c.ID(), a.ID)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := s.links.IncrementViews(s.ctx, link.ShortCode(), i%2 == 0)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	views, unique, err := s.links.IncrementViews(s.ctx, link.ShortCode(), false)
	s.Require().NoError(err)
	s.Equal(int64(21), views)
	s.Equal(int64(10), unique)
}

func (s *IntegrationTestSuite) TestDedupStore_UsesRedis() {
	first, err := s.dedup.MarkIfAbsent(s.ctx, "intD01", "fp", time.Minute)
	s.Require().NoError(err)
	second, err := s.dedup.MarkIfAbsent(s.ctx, "intD01", "fp", time.Minute)
	s.Require().NoError(err)

	s.True(first)
	s.False(second)
}
