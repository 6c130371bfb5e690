package events

import (
	"regexp"
	"strings"

	"confhub-backend/internal/models"
)

type compiledRule struct {
	tag     models.Tag
	pattern *regexp.Regexp
}

// Classifier assigns topical tags to free text. Every rule is evaluated
// independently; a text may receive several tags.
type Classifier struct {
	defaultTag models.Tag
	rules      []compiledRule
}

func NewClassifier(c *Catalog) *Classifier {
	rules := make([]compiledRule, 0, len(c.Categories))
	for _, r := range c.Categories {
		alts := make([]string, len(r.Keywords))
		for i, kw := range r.Keywords {
			alts[i] = regexp.QuoteMeta(strings.ToLower(kw))
		}
		rules = append(rules, compiledRule{
			tag:     r.Tag,
			pattern: regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`),
		})
	}
	return &Classifier{defaultTag: c.DefaultTag, rules: rules}
}

// Classify returns the default tag followed by every matching category in
// rule order, without duplicates.
func (c *Classifier) Classify(text string) []models.Tag {
	lower := strings.ToLower(text)

	tags := []models.Tag{c.defaultTag}
	seen := map[models.Tag]bool{c.defaultTag: true}
	for _, r := range c.rules {
		if seen[r.tag] || !r.pattern.MatchString(lower) {
			continue
		}
		seen[r.tag] = true
		tags = append(tags, r.tag)
	}
	return tags
}

func (c *Classifier) DefaultTag() models.Tag {
	return c.defaultTag
}
