package aggregate

import "github.com/umputun/trendscope/pkg/domain"

// DefaultPerPlatformCap limits topics accepted from one platform during a refresh
const DefaultPerPlatformCap = 200

// MergeOptions controls Merge
type MergeOptions struct {
	ByURL          bool // also drop candidates with an already seen non-empty url
	PerPlatformCap int  // zero means unbounded
	TotalCap       int  // zero means unbounded
}

// Merge makes a single pass over candidates keeping the first topic seen for each title.
// Topics from a platform past its cap are skipped, the pass stops once TotalCap is reached.
// Merging an already merged list returns it unchanged.
func Merge(candidates []domain.Topic, opts MergeOptions) []domain.Topic {
	res := make([]domain.Topic, 0, len(candidates))
	titles := make(map[string]bool, len(candidates))
	urls := make(map[string]bool, len(candidates))
	perPlatform := make(map[domain.Platform]int)

	for _, c := range candidates {
		if opts.TotalCap > 0 && len(res) >= opts.TotalCap {
			break
		}
		if titles[c.Title] {
			continue
		}
		if opts.ByURL && c.URL != "" && urls[c.URL] {
			continue
		}
		if opts.PerPlatformCap > 0 && perPlatform[c.Platform] >= opts.PerPlatformCap {
			continue
		}
		titles[c.Title] = true
		if c.URL != "" {
			urls[c.URL] = true
		}
		perPlatform[c.Platform]++
		res = append(res, c)
	}
	return res
}
