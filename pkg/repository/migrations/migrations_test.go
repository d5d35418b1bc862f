package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUp_FreshDatabase(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	require.NoError(t, Up(ctx, db))

	var indexes int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'index'
		AND name IN ('idx_platform_title_url', 'idx_trending_topics_timestamp', 'idx_trending_topics_topic')`).Scan(&indexes)
	require.NoError(t, err)
	assert.Equal(t, 3, indexes)

	// second run is a no-op
	require.NoError(t, Up(ctx, db))

	p, err := NewProvider(db)
	require.NoError(t, err)
	ver, err := p.GetDBVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ver)

	statuses, err := p.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 5)
	for _, st := range statuses {
		assert.Equal(t, goose.StateApplied, st.State, "version %d", st.Source.Version)
	}
}

func TestUp_LegacyDatabase(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	// table as created by the first version of the service, no topic/author and no identity constraint
	_, err := db.ExecContext(ctx, `CREATE TABLE trending_topics (
		id INTEGER PRIMARY KEY AUTOINCREMENT, platform TEXT NOT NULL, title TEXT NOT NULL, description TEXT,
		url TEXT, score INTEGER DEFAULT 0, engagement INTEGER DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP, category TEXT, tags TEXT)`)
	require.NoError(t, err)
	for _, eng := range []int{1, 2, 3} {
		_, err = db.ExecContext(ctx, `INSERT INTO trending_topics (platform, title, url, engagement) VALUES ('Reddit', 'A', 'u1', ?)`, eng)
		require.NoError(t, err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO trending_topics (platform, title, url) VALUES ('Reddit', 'B', 'u2')`)
	require.NoError(t, err)

	require.NoError(t, Up(ctx, db))

	var cols int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('trending_topics') WHERE name IN ('topic', 'author')`).Scan(&cols)
	require.NoError(t, err)
	assert.Equal(t, 2, cols)

	var count, engagement int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trending_topics`).Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT engagement FROM trending_topics WHERE title = 'A'`).Scan(&engagement))
	assert.Equal(t, 1, engagement, "lowest id kept")

	_, err = db.ExecContext(ctx, `INSERT INTO trending_topics (platform, title, url) VALUES ('Reddit', 'B', 'u2')`)
	require.Error(t, err, "identity is unique after migration")
}

func TestUp_LegacyTimestamps(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	_, err := db.ExecContext(ctx, `CREATE TABLE trending_topics (
		id INTEGER PRIMARY KEY AUTOINCREMENT, platform TEXT NOT NULL, title TEXT NOT NULL, description TEXT,
		url TEXT, score INTEGER DEFAULT 0, engagement INTEGER DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP, category TEXT, tags TEXT)`)
	require.NoError(t, err)
	rows := []struct{ title, ts string }{
		{"space", "2025-04-08 11:00:00"},
		{"naive iso", "2025-04-08T11:00:00.5"},
		{"offset", "2025-04-08T13:00:00+02:00"},
		{"canonical", "2025-04-08T11:00:00.000000Z"},
		{"garbage", "yesterday"},
	}
	for _, r := range rows {
		_, err = db.ExecContext(ctx, `INSERT INTO trending_topics (platform, title, url, timestamp) VALUES ('Reddit', ?, ?, ?)`,
			r.title, r.title, r.ts)
		require.NoError(t, err)
	}

	require.NoError(t, Up(ctx, db))

	expected := map[string]string{
		"space":     "2025-04-08T11:00:00.000000Z",
		"naive iso": "2025-04-08T11:00:00.500000Z",
		"offset":    "2025-04-08T11:00:00.000000Z",
		"canonical": "2025-04-08T11:00:00.000000Z",
		"garbage":   "yesterday",
	}
	for title, want := range expected {
		var got string
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT CAST(timestamp AS TEXT) FROM trending_topics WHERE title = ?`, title).Scan(&got))
		assert.Equal(t, want, got, title)
	}
}

func TestCanonicalTime(t *testing.T) {
	tests := []struct {
		in, out string
		ok      bool
	}{
		{in: "2025-04-08 11:00:00", out: "2025-04-08T11:00:00.000000Z", ok: true},
		{in: " 2025-04-08 11:00:00.123 ", out: "2025-04-08T11:00:00.123000Z", ok: true},
		{in: "2025-04-08 13:00:00+02:00", out: "2025-04-08T11:00:00.000000Z", ok: true},
		{in: "2025-04-08T11:00:00Z", out: "2025-04-08T11:00:00.000000Z", ok: true},
		{in: "", ok: false},
		{in: "08/04/2025", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out, ok := canonicalTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestDown(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	require.NoError(t, Up(ctx, db))

	p, err := NewProvider(db)
	require.NoError(t, err)
	for ver := int64(5); ver > 0; ver-- {
		res, err := p.Down(ctx)
		require.NoError(t, err)
		assert.Equal(t, ver, res.Source.Version)
	}

	var tables int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'trending_topics'`).Scan(&tables))
	assert.Equal(t, 0, tables)
}
