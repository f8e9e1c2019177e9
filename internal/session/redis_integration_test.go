//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"tarediiran-industries.com/rail-dss/internal/session"
)

type RedisStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	store     *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	s.client, err = session.NewRedisClient(ctx, url)
	s.Require().NoError(err)
	s.store = session.NewRedisStore(s.client, time.Minute)
}

func (s *RedisStoreSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if err := testcontainers.TerminateContainer(s.container); err != nil {
		s.T().Logf("terminate container: %v", err)
	}
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisStoreSuite) TestRoundTripWithTTL() {
	ctx := context.Background()
	id := uuid.NewString()

	state, err := s.store.Load(ctx, id)
	s.Require().NoError(err)
	s.False(state.SimulationRun)

	s.Require().NoError(s.store.Save(ctx, id, session.State{SimulationRun: true}))
	state, err = s.store.Load(ctx, id)
	s.Require().NoError(err)
	s.True(state.SimulationRun)

	ttl, err := s.client.TTL(ctx, "raildss:session:"+id).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.NoError(s.store.Health(ctx))
}
