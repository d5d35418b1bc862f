// Package migrations keeps versioned schema changes of the topic store.
// Plain DDL lives in embedded sql files, changes depending on the current schema are go migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fsys embed.FS

// TimeLayout is fixed width UTC, so text comparison in sql matches time order
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// TimeLayouts are accepted on read, rows written by older versions of the service use naive iso
// format or the space separated CURRENT_TIMESTAMP default
var TimeLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// NewProvider makes goose provider with all embedded and go migrations
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fsys,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(
			goose.NewGoMigration(2, &goose.GoFunc{RunTx: addTopicAuthor}, &goose.GoFunc{RunTx: noop}),
			goose.NewGoMigration(3, &goose.GoFunc{RunTx: uniqueIdentity}, &goose.GoFunc{RunTx: dropUniqueIdentity}),
			goose.NewGoMigration(5, &goose.GoFunc{RunTx: canonicalTimestamps}, &goose.GoFunc{RunTx: noop}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("make migrations provider: %w", err)
	}
	return p, nil
}

// Up applies all pending migrations
func Up(ctx context.Context, db *sql.DB) error {
	p, err := NewProvider(db)
	if err != nil {
		return err
	}
	res, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range res {
		lgr.Printf("[DEBUG] migration %d applied in %v", r.Source.Version, r.Duration)
	}
	return nil
}

// addTopicAuthor adds topic and author columns to tables created before they existed
func addTopicAuthor(ctx context.Context, tx *sql.Tx) error {
	for _, col := range []string{"topic", "author"} {
		var count int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM pragma_table_info('trending_topics') WHERE name = ?`, col).Scan(&count)
		if err != nil {
			return fmt.Errorf("check %s column: %w", col, err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, "ALTER TABLE trending_topics ADD COLUMN "+col+" TEXT"); err != nil {
			return fmt.Errorf("add %s column: %w", col, err)
		}
	}
	return nil
}

// uniqueIdentity removes rows repeating (platform, title, url), keeping the lowest id,
// and makes the identity unique for tables created without the constraint
func uniqueIdentity(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM trending_topics WHERE id NOT IN (
		SELECT MIN(id) FROM trending_topics GROUP BY platform, title, url)`)
	if err != nil {
		return fmt.Errorf("remove duplicates: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_platform_title_url ON trending_topics(platform, title, url)`)
	if err != nil {
		return fmt.Errorf("create identity index: %w", err)
	}
	return nil
}

func dropUniqueIdentity(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_platform_title_url`); err != nil {
		return fmt.Errorf("drop identity index: %w", err)
	}
	return nil
}

// canonicalTimestamps rewrites timestamps stored in any of TimeLayouts to TimeLayout.
// Window and eviction filters compare timestamps as text and need a single layout.
// Unparsable values are left as is.
func canonicalTimestamps(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, CAST(timestamp AS TEXT) FROM trending_topics
		WHERE timestamp IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("select timestamps: %w", err)
	}

	updates := map[int64]string{}
	for rows.Next() {
		var id int64
		var ts string
		if err := rows.Scan(&id, &ts); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan timestamp: %w", err)
		}
		canonical, ok := canonicalTime(ts)
		if !ok {
			lgr.Printf("[WARN] can't parse timestamp %q of topic %d, left as is", ts, id)
			continue
		}
		if canonical != ts {
			updates[id] = canonical
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("read timestamps: %w", err)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("close timestamps: %w", err)
	}

	for id, ts := range updates {
		if _, err := tx.ExecContext(ctx, `UPDATE trending_topics SET timestamp = ? WHERE id = ?`, ts, id); err != nil {
			return fmt.Errorf("update timestamp of topic %d: %w", id, err)
		}
	}
	if len(updates) > 0 {
		lgr.Printf("[INFO] converted %d legacy timestamps", len(updates))
	}
	return nil
}

func canonicalTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Format(TimeLayout), true
		}
	}
	return "", false
}

func noop(context.Context, *sql.Tx) error { return nil }
