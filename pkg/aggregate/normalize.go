// Package aggregate turns raw platform records into topics and merges them into a deduplicated set.
package aggregate

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/trendscope/pkg/classifier"
	"github.com/umputun/trendscope/pkg/domain"
)

// DefaultDescriptionLength is the max description length in runes
const DefaultDescriptionLength = 200

const unknownAuthor = "Unknown"

// Normalizer converts raw records into canonical topics
type Normalizer struct {
	policy  *bluemonday.Policy
	descLen int
}

// NewNormalizer makes a normalizer truncating descriptions to descLen runes
func NewNormalizer(descLen int) *Normalizer {
	if descLen <= 0 {
		descLen = DefaultDescriptionLength
	}
	return &Normalizer{policy: bluemonday.StrictPolicy(), descLen: descLen}
}

// Normalize makes a topic from raw record. Returns false if the record has no platform or title.
// now is used as the timestamp of records without publication time.
func (n *Normalizer) Normalize(raw domain.RawItem, now time.Time) (domain.Topic, bool) {
	title := n.plain(raw.Title)
	if raw.Platform == "" || title == "" {
		return domain.Topic{}, false
	}
	desc := n.plain(raw.Description)
	source := strings.TrimSpace(raw.Source)

	res := domain.Topic{
		Platform:    raw.Platform,
		Title:       title,
		URL:         strings.TrimSpace(raw.URL),
		Author:      strings.TrimSpace(raw.Author),
		Description: truncate(desc, n.descLen),
		Timestamp:   raw.Published.UTC(),
	}
	if res.Author == "" {
		res.Author = unknownAuthor
	}
	if raw.Published.IsZero() {
		res.Timestamp = now.UTC()
	}

	label := strings.ToLower(string(raw.Platform))
	if raw.Platform == domain.PlatformReddit && source != "" {
		label = source
	}
	res.Topic = classifier.Classify(label, strings.TrimSpace(title+" "+desc))

	res.Score, res.Engagement = engagement(raw)

	switch raw.Platform {
	case domain.PlatformReddit:
		res.Category = "r/" + source
		res.Tags = tags("reddit", source, string(res.Topic))
		if res.Description == "" {
			res.Description = fmt.Sprintf("Reddit post from r/%s", source)
		}
	case domain.PlatformYouTube:
		res.Category = orDefault(raw.Category, "Video")
		res.Tags = tags("youtube", "video", "trending", strings.ToLower(source))
		if res.Description == "" {
			res.Description = "Trending video on YouTube"
		}
	case domain.PlatformGoogleTrends:
		res.Category = "Trending Search"
		res.Tags = tags("google-trends", "trending", "search")
		if res.Description == "" {
			res.Description = truncate("Trending search on Google - "+title, n.descLen)
		}
	case domain.PlatformHackerNews:
		res.Category = orDefault(source, "top")
		res.Tags = tags("hacker-news", source)
		if res.Description == "" {
			res.Description = fmt.Sprintf("%d points and %d comments on Hacker News", raw.Score, raw.Comments)
		}
	case domain.PlatformGitHub:
		res.Category = orDefault(raw.Category, "Repository")
		res.Tags = tags("github", strings.ToLower(raw.Category))
	default:
		res.Category = orDefault(raw.Category, string(raw.Platform))
		res.Tags = tags(strings.ToLower(string(raw.Platform)), source)
	}
	if res.Description == "" {
		res.Description = "No description available"
	}

	return res, true
}

// engagement returns score and engagement for the raw record, formula depends on platform
func engagement(raw domain.RawItem) (score, eng int64) {
	switch raw.Platform {
	case domain.PlatformReddit, domain.PlatformHackerNews:
		return raw.Score, raw.Score + 2*raw.Comments
	case domain.PlatformYouTube:
		eng = raw.Views + 10*raw.Likes + 50*raw.Comments
		return eng / 1000, eng
	case domain.PlatformGoogleTrends:
		rs := int64(100 - 2*raw.Rank)
		if rs < 1 {
			rs = 1
		}
		return rs, rs
	case domain.PlatformGitHub:
		return raw.Score, raw.Score + 10*raw.StarsToday + raw.Forks
	default:
		return raw.Score, raw.Score + raw.Comments
	}
}

// plain strips html, unescapes entities and collapses whitespace
func (n *Normalizer) plain(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(n.policy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// tags drops blanks and repeats, keeping the order
func tags(vals ...string) []string {
	res := make([]string, 0, len(vals))
	seen := make(map[string]bool, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		res = append(res, v)
	}
	return res
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
