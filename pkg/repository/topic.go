package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/trendscope/pkg/aggregate"
	"github.com/umputun/trendscope/pkg/domain"
)

// TopicRepository handles trending topic storage
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// topicSQL is the database representation of domain.Topic
type topicSQL struct {
	ID          int64   `db:"id"`
	Platform    string  `db:"platform"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	URL         string  `db:"url"`
	Score       int64   `db:"score"`
	Engagement  int64   `db:"engagement"`
	Timestamp   sqlTime `db:"timestamp"`
	Category    string  `db:"category"`
	Tags        tagsSQL `db:"tags"`
	Topic       string  `db:"topic"`
	Author      string  `db:"author"`
}

// topicColumns tolerate nulls left by older versions of the schema
var topicColumns = []string{
	"id", "platform", "title",
	"COALESCE(description, '') AS description",
	"COALESCE(url, '') AS url",
	"COALESCE(score, 0) AS score",
	"COALESCE(engagement, 0) AS engagement",
	"timestamp",
	"COALESCE(category, '') AS category",
	"tags",
	"COALESCE(NULLIF(topic, ''), 'general') AS topic",
	"COALESCE(NULLIF(author, ''), 'Unknown') AS author",
}

// Upsert inserts the topic or replaces the stored one with the same platform, title and url
func (r *TopicRepository) Upsert(ctx context.Context, topic domain.Topic) error {
	row := fromDomainTopic(topic)
	query := `
		INSERT OR REPLACE INTO trending_topics
			(platform, title, description, url, score, engagement, timestamp, category, tags, topic, author)
		VALUES
			(:platform, :title, :description, :url, :score, :engagement, :timestamp, :category, :tags, :topic, :author)
	`
	err := withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, row)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert topic %q: %w", topic.Title, err)
	}
	return nil
}

// QueryWindow returns topics newer than q.Since, filtered and ordered as requested.
// Rows repeating an earlier title or url are dropped after the query.
func (r *TopicRepository) QueryWindow(ctx context.Context, q domain.WindowQuery) ([]domain.Topic, error) {
	b := sq.Select(topicColumns...).From("trending_topics").Where(sq.Gt{"timestamp": sqlTime(q.Since)})
	if q.Platform != "" {
		b = b.Where(sq.Eq{"platform": string(q.Platform)})
	}
	if q.Topic != "" {
		b = b.Where(sq.Eq{"topic": string(q.Topic)})
	}

	dir := "DESC"
	if q.Sort.Order == domain.OrderAsc {
		dir = "ASC"
	}
	switch q.Sort.By {
	case domain.SortEngagement:
		b = b.OrderBy("engagement "+dir, "id")
	case domain.SortDate:
		b = b.OrderBy("timestamp "+dir, "id")
	default:
		b = b.OrderBy("RANDOM()")
	}
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build window query: %w", err)
	}

	var rows []topicSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}

	topics := make([]domain.Topic, 0, len(rows))
	for i := range rows {
		topics = append(topics, rows[i].toDomain())
	}
	return aggregate.Merge(topics, aggregate.MergeOptions{ByURL: true}), nil
}

// EvictOlderThan deletes topics with timestamp before cutoff and returns the number of deleted rows
func (r *TopicRepository) EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM trending_topics WHERE timestamp < ?`, sqlTime(cutoff))
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("evict topics: %w", err)
	}
	return n, nil
}

// DeduplicateAll deletes every row repeating (platform, title, url) of a row with lower id
func (r *TopicRepository) DeduplicateAll(ctx context.Context) (domain.CleanupReport, error) {
	var report domain.CleanupReport
	err := withRetry(ctx, func() (err error) {
		report, err = r.deduplicate(ctx)
		return err
	})
	if err != nil {
		return domain.CleanupReport{}, fmt.Errorf("deduplicate topics: %w", err)
	}
	return report, nil
}

func (r *TopicRepository) deduplicate(ctx context.Context) (domain.CleanupReport, error) {
	var report domain.CleanupReport
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.GetContext(ctx, &report.Before, `SELECT COUNT(*) FROM trending_topics`); err != nil {
		return report, fmt.Errorf("count before cleanup: %w", err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM trending_topics WHERE id NOT IN (
		SELECT MIN(id) FROM trending_topics GROUP BY platform, title, url)`)
	if err != nil {
		return report, fmt.Errorf("delete duplicates: %w", err)
	}
	if err := tx.GetContext(ctx, &report.After, `SELECT COUNT(*) FROM trending_topics`); err != nil {
		return report, fmt.Errorf("count after cleanup: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit cleanup: %w", err)
	}
	report.Removed = report.Before - report.After
	return report, nil
}

// Aggregate returns platform and top 10 category counts for topics newer than since, and totals
func (r *TopicRepository) Aggregate(ctx context.Context, since time.Time) (domain.Stats, error) {
	res := domain.Stats{Platforms: map[domain.Platform]int64{}, Categories: []domain.CategoryCount{}}

	query, args, err := sq.Select("platform", "COUNT(*) AS cnt").From("trending_topics").
		Where(sq.Gt{"timestamp": sqlTime(since)}).GroupBy("platform").ToSql()
	if err != nil {
		return res, fmt.Errorf("build platform stats query: %w", err)
	}
	var platforms []struct {
		Platform string `db:"platform"`
		Count    int64  `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &platforms, query, args...); err != nil {
		return res, fmt.Errorf("query platform stats: %w", err)
	}
	for _, p := range platforms {
		res.Platforms[domain.Platform(p.Platform)] = p.Count
		res.TotalWindow += p.Count
	}

	query, args, err = sq.Select("COALESCE(category, '') AS category", "COUNT(*) AS cnt").From("trending_topics").
		Where(sq.Gt{"timestamp": sqlTime(since)}).GroupBy("category").OrderBy("cnt DESC", "category").Limit(10).ToSql()
	if err != nil {
		return res, fmt.Errorf("build category stats query: %w", err)
	}
	var categories []struct {
		Category string `db:"category"`
		Count    int64  `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return res, fmt.Errorf("query category stats: %w", err)
	}
	for _, c := range categories {
		res.Categories = append(res.Categories, domain.CategoryCount{Category: c.Category, Count: c.Count})
	}

	if res.TotalAllTime, err = r.Count(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// Count returns the number of stored topics
func (r *TopicRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM trending_topics`); err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return count, nil
}

// LatestTimestamp returns the newest topic timestamp, zero time if the store is empty
func (r *TopicRepository) LatestTimestamp(ctx context.Context) (time.Time, error) {
	var ts sqlTime
	if err := r.db.GetContext(ctx, &ts, `SELECT MAX(timestamp) FROM trending_topics`); err != nil {
		return time.Time{}, fmt.Errorf("get latest timestamp: %w", err)
	}
	return time.Time(ts), nil
}

func fromDomainTopic(t domain.Topic) topicSQL {
	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	topic := t.Topic
	if topic == "" {
		topic = domain.TagGeneral
	}
	author := t.Author
	if author == "" {
		author = "Unknown"
	}
	return topicSQL{
		Platform:    string(t.Platform),
		Title:       t.Title,
		Description: t.Description,
		URL:         t.URL,
		Score:       t.Score,
		Engagement:  t.Engagement,
		Timestamp:   sqlTime(ts),
		Category:    t.Category,
		Tags:        tagsSQL(t.Tags),
		Topic:       string(topic),
		Author:      author,
	}
}

func (t *topicSQL) toDomain() domain.Topic {
	tags := []string(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return domain.Topic{
		ID:          t.ID,
		Platform:    domain.Platform(t.Platform),
		Title:       t.Title,
		Description: t.Description,
		URL:         t.URL,
		Score:       t.Score,
		Engagement:  t.Engagement,
		Category:    t.Category,
		Topic:       domain.TopicTag(t.Topic),
		Tags:        tags,
		Author:      t.Author,
		Timestamp:   time.Time(t.Timestamp),
	}
}
