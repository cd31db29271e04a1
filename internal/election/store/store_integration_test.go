//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tally/internal/election/store"
	redisclient "tally/internal/platform/redis"
	"tally/pkg/platform/sentinel"
	"tally/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestContract() {
	exerciseStore(s.T(), store.NewRedis(s.redis.Client.Client))
}

func (s *RedisStoreSuite) TestKeysAreIsolated() {
	ctx := context.Background()
	a := store.NewRedis(s.redis.Client.Client, store.WithRedisKey("tally:test:a"))
	b := store.NewRedis(s.redis.Client.Client, store.WithRedisKey("tally:test:b"))

	s.Require().NoError(a.Save(ctx, sampleSnapshot(s.T(), 1)))
	_, err := b.Load(ctx)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestUnreachableServer() {
	cfg := s.redis.Config
	cfg.Key = "tally:test:closed"
	client, err := redisclient.New(context.Background(), cfg)
	s.Require().NoError(err)
	st := store.NewRedis(client.Client, store.WithRedisKey(client.SnapshotKey()))
	s.Require().NoError(client.Close())

	_, err = st.Load(context.Background())
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *RedisStoreSuite) TestCorruptDocument() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, store.DefaultRedisKey, "{", 0).Err())
	_, err := store.NewRedis(s.redis.Client.Client).Load(ctx)
	s.ErrorIs(err, sentinel.ErrCorrupt)
}

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	var err error
	s.store, err = store.NewPostgres(context.Background(), s.postgres.DB)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.postgres.DB.ExecContext(context.Background(), `DELETE FROM election_snapshots`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestContract() {
	exerciseStore(s.T(), s.store)
}

func (s *PostgresStoreSuite) TestMigrationsAreIdempotent() {
	_, err := store.NewPostgres(context.Background(), s.postgres.DB)
	s.NoError(err)
}

func (s *PostgresStoreSuite) TestWinnerColumnIsQueryable() {
	ctx := context.Background()
	snap := sampleSnapshot(s.T(), 2)
	snap.WinnerIDs = []int{0, 1}
	s.Require().NoError(s.store.Save(ctx, snap))

	var contains bool
	err := s.postgres.DB.QueryRowContext(ctx,
		`SELECT 1 = ANY(winner_ids) FROM election_snapshots WHERE id = 1`,
	).Scan(&contains)
	s.Require().NoError(err)
	s.True(contains)
}

func (s *PostgresStoreSuite) TestWinnerColumnHoldsBigints() {
	var udt string
	err := s.postgres.DB.QueryRowContext(context.Background(),
		`SELECT udt_name FROM information_schema.columns
		 WHERE table_name = 'election_snapshots' AND column_name = 'winner_ids'`,
	).Scan(&udt)
	s.Require().NoError(err)
	s.Equal("_int8", udt)
}

func (s *PostgresStoreSuite) TestDivergentWinnerColumnIsCorrupt() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, sampleSnapshot(s.T(), 2)))
	_, err := s.postgres.DB.ExecContext(ctx, `UPDATE election_snapshots SET winner_ids = '{1}'`)
	s.Require().NoError(err)

	_, err = s.store.Load(ctx)
	s.ErrorIs(err, sentinel.ErrCorrupt)
}

func (s *PostgresStoreSuite) TestOpenPostgres() {
	db, err := store.OpenPostgres(context.Background(), s.postgres.DSN)
	s.Require().NoError(err)
	s.NoError(db.Close())
}
