package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/trendscope/pkg/domain"
)

// setupTestDB creates repositories on an in-memory database
func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestNewRepositories(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))
	assert.NotNil(t, repos.Topic)

	var tables int
	err := repos.DB.GetContext(context.Background(), &tables,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('trending_topics', 'goose_db_version')`)
	require.NoError(t, err)
	assert.Equal(t, 2, tables)
}

func TestNewRepositories_FileReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "topics.db") + "?mode=rwc"

	repos, err := NewRepositories(ctx, Config{DSN: dsn, MaxOpenConns: 2})
	require.NoError(t, err)
	require.NoError(t, repos.Topic.Upsert(ctx, testTopic("A", "u1", time.Now())))
	require.NoError(t, repos.Close())

	// migrations are not reapplied and data survives
	repos, err = NewRepositories(ctx, Config{DSN: dsn, MaxOpenConns: 2})
	require.NoError(t, err)
	defer repos.Close()
	count, err := repos.Topic.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewRepositories_PragmasOnEveryConnection(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "topics.db") + "?mode=rwc"
	repos, err := NewRepositories(ctx, Config{DSN: dsn, MaxOpenConns: 3, MaxIdleConns: 3})
	require.NoError(t, err)
	defer repos.Close()

	// hold all connections at once so each one is checked
	conns := make([]*sqlx.Conn, 0, 3)
	for range 3 {
		conn, err := repos.DB.Connx(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	for i, conn := range conns {
		var timeout, synchronous int
		require.NoError(t, conn.GetContext(ctx, &timeout, "PRAGMA busy_timeout"))
		require.NoError(t, conn.GetContext(ctx, &synchronous, "PRAGMA synchronous"))
		assert.Equal(t, 5000, timeout, "connection %d", i)
		assert.Equal(t, 1, synchronous, "connection %d, NORMAL", i)
		require.NoError(t, conn.Close())
	}
}

func TestNewRepositories_LegacyTimestamps(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	// table and row as written by the first version of the service, CURRENT_TIMESTAMP layout
	legacy, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = legacy.ExecContext(ctx, `CREATE TABLE trending_topics (
		id INTEGER PRIMARY KEY AUTOINCREMENT, platform TEXT NOT NULL, title TEXT NOT NULL, description TEXT,
		url TEXT, score INTEGER DEFAULT 0, engagement INTEGER DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP, category TEXT, tags TEXT)`)
	require.NoError(t, err)
	hourAgo := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	_, err = legacy.ExecContext(ctx, `INSERT INTO trending_topics (platform, title, url, timestamp) VALUES ('Reddit', 'old', 'u1', ?)`,
		hourAgo.Format("2006-01-02 15:04:05"))
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	repos, err := NewRepositories(ctx, Config{DSN: "file:" + path + "?mode=rwc"})
	require.NoError(t, err)
	defer repos.Close()

	evicted, err := repos.Topic.EvictOlderThan(ctx, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), evicted, "an hour old row is not expired")

	res, err := repos.Topic.QueryWindow(ctx, domain.WindowQuery{Since: time.Now().Add(-2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "old", res[0].Title)
	assert.Equal(t, hourAgo, res[0].Timestamp)
}

func TestNewRepositories_BadDSN(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{DSN: "file:/non-existent-dir/sub/x.db?mode=ro"})
	require.Error(t, err)
}
