// Package classifier assigns a topic tag to a trending item using an ordered keyword table.
package classifier

import (
	"strings"

	"github.com/umputun/trendscope/pkg/domain"
)

type rule struct {
	tag      domain.TopicTag
	keywords []string
}

// rules are checked in order, the first matching tag wins
var rules = []rule{
	{tag: domain.TagCrypto, keywords: []string{"crypto", "bitcoin", "ethereum", "blockchain", "defi", "nft", "token", "coin"}},
	{tag: domain.TagSports, keywords: []string{"sports", "nba", "nfl", "soccer", "tennis", "formula1", "football", "basketball", "baseball"}},
	{tag: domain.TagFinance, keywords: []string{"finance", "investing", "stocks", "wallstreet", "economy", "market", "trading"}},
	{tag: domain.TagCulture, keywords: []string{"movies", "music", "art", "books", "television", "fashion", "culture", "photography"}},
	{tag: domain.TagMemes, keywords: []string{"memes", "funny", "humor", "jokes", "dank", "viral"}},
	{tag: domain.TagGaming, keywords: []string{"gaming", "game", "esports", "pcgaming", "xbox", "playstation", "nintendo"}},
	{tag: domain.TagTechnology, keywords: []string{"technology", "tech", "science", "innovation", "ai", "machine learning"}},
	{tag: domain.TagPolitics, keywords: []string{"politics", "worldnews", "government", "election"}},
	{tag: domain.TagLifestyle, keywords: []string{"food", "cooking", "travel", "health", "fitness", "lifestyle"}},
}

// Classify returns the tag of the first rule with a keyword found in source or text,
// case-insensitive substring match. Returns domain.TagGeneral if nothing matches.
func Classify(source, text string) domain.TopicTag {
	source, text = strings.ToLower(source), strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(source, kw) || strings.Contains(text, kw) {
				return r.tag
			}
		}
	}
	return domain.TagGeneral
}

// Tags returns all tags the classifier can produce, in priority order, general last
func Tags() []domain.TopicTag {
	res := make([]domain.TopicTag, 0, len(rules)+1)
	for _, r := range rules {
		res = append(res, r.tag)
	}
	return append(res, domain.TagGeneral)
}

// IsKnown checks if tag is one of the classifier tags
func IsKnown(tag domain.TopicTag) bool {
	for _, t := range Tags() {
		if t == tag {
			return true
		}
	}
	return false
}
