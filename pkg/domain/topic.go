package domain

import (
	"strings"
	"time"
)

// Platform identifies the source platform of a topic
type Platform string

// known platforms
const (
	PlatformReddit       Platform = "Reddit"
	PlatformYouTube      Platform = "YouTube"
	PlatformGoogleTrends Platform = "Google Trends"
	PlatformHackerNews   Platform = "Hacker News"
	PlatformGitHub       Platform = "GitHub"
)

// Platforms returns all known platforms in display order
func Platforms() []Platform {
	return []Platform{PlatformReddit, PlatformYouTube, PlatformGoogleTrends, PlatformHackerNews, PlatformGitHub}
}

// ParsePlatform resolves a platform by display name or slug, ignoring case,
// e.g. "Google Trends", "google-trends" and "google_trends" are the same platform.
// Unknown names are returned trimmed but otherwise unchanged.
func ParsePlatform(s string) Platform {
	s = strings.TrimSpace(s)
	key := platformKey(s)
	for _, p := range Platforms() {
		if platformKey(string(p)) == key {
			return p
		}
	}
	return Platform(s)
}

func platformKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// TopicTag is a coarse subject label assigned by the classifier
type TopicTag string

// topic tags, in classifier priority order
const (
	TagCrypto     TopicTag = "crypto"
	TagSports     TopicTag = "sports"
	TagFinance    TopicTag = "finance"
	TagCulture    TopicTag = "culture"
	TagMemes      TopicTag = "memes"
	TagGaming     TopicTag = "gaming"
	TagTechnology TopicTag = "technology"
	TagPolitics   TopicTag = "politics"
	TagLifestyle  TopicTag = "lifestyle"
	TagGeneral    TopicTag = "general"
)

// Topic is a normalized trending item, the unit stored and served.
// Identity is (Platform, Title, URL).
type Topic struct {
	ID          int64     `json:"-"`
	Platform    Platform  `json:"platform"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Score       int64     `json:"score"`
	Engagement  int64     `json:"engagement"`
	Category    string    `json:"category"`
	Topic       TopicTag  `json:"topic"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"timestamp"`
}

// RawItem is a platform record as produced by a source adapter, before normalization
type RawItem struct {
	Platform    Platform
	Source      string // subreddit, region, geo, story list or language
	Title       string
	Description string
	URL         string
	Author      string
	Category    string // platform supplied category, e.g. youtube category id
	Rank        int    // zero based position in the source listing
	Score       int64
	Comments    int64
	Views       int64
	Likes       int64
	Forks       int64
	StarsToday  int64
	Published   time.Time
}

// TopicCount is a number of topics with the given tag
type TopicCount struct {
	Topic TopicTag `json:"topic"`
	Count int      `json:"count"`
}

// CategoryCount is a number of topics in the given category
type CategoryCount struct {
	Category string
	Count    int64
}

// Stats is a summary of stored topics
type Stats struct {
	Platforms    map[Platform]int64
	Categories   []CategoryCount // top categories, most populated first
	TotalWindow  int64
	TotalAllTime int64
}

// CleanupReport describes the result of a duplicate cleanup pass
type CleanupReport struct {
	Before  int64 `json:"before"`
	After   int64 `json:"after"`
	Removed int64 `json:"removed"`
}

// RefreshReport describes the result of one refresh cycle
type RefreshReport struct {
	CycleID    string
	Fetched    int // raw items returned by all sources
	Merged     int // topics left after normalization and merge
	Stored     int
	Failed     int
	Evicted    int64
	Skipped    bool // nothing fetched, store and cache untouched
	StartedAt  time.Time
	FinishedAt time.Time
}
