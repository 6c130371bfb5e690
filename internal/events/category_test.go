package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confhub-backend/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultCatalog())

	tests := []struct {
		name string
		text string
		want []models.Tag
	}{
		{name: "aws is tech", text: "AWS re:Invent 2024 - Las Vegas", want: []models.Tag{"conference", "tech"}},
		{name: "several categories", text: "Generative AI & Big Data Summit", want: []models.Tag{"conference", "ai", "data"}},
		{name: "rule order kept", text: "Business Healthcare Analytics", want: []models.Tag{"conference", "data", "health", "business"}},
		{name: "no match", text: "Annual Gathering", want: []models.Tag{"conference"}},
		{name: "whole words only", text: "Airline Databases Expo", want: []models.Tag{"conference"}},
		{name: "case insensitive", text: "MACHINE LEARNING WEEK", want: []models.Tag{"conference", "ai"}},
		{name: "empty text", text: "", want: []models.Tag{"conference"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifier_NoDuplicates(t *testing.T) {
	t.Parallel()

	cat, err := ParseCatalog([]byte(`
default_tag: conference
categories:
  - tag: conference
    keywords: [summit]
  - tag: ai
    keywords: [ai]
  - tag: ai
    keywords: [llm]
`))
	require.NoError(t, err)

	got := NewClassifier(cat).Classify("AI and LLM summit")
	assert.Equal(t, []models.Tag{"conference", "ai"}, got)
}

func TestParseCatalog_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "missing default tag", yaml: "categories: []"},
		{name: "rule without keywords", yaml: "default_tag: conference\ncategories:\n  - tag: ai\n"},
		{name: "empty image pool", yaml: "default_tag: conference\nimages:\n  - tag: ai\n"},
		{name: "not yaml", yaml: "default_tag: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog_EmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	cat, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, models.TagConference, cat.DefaultTag)
	assert.Len(t, cat.Locations, 7)
}
