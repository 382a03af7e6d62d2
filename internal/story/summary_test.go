package story

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, "", Summarize(nil))
	assert.Equal(t, "a b", Summarize([]string{" a ", "", "b"}))
	assert.Equal(
		t, "e2 e3 e4 e5 e6",
		Summarize([]string{"e0", "e1", "e2", "e3", "e4", "e5", "e6"}),
	)
}

func TestSummarizeKeepsTail(t *testing.T) {
	long := strings.Repeat("x", SummaryMaxLen)
	got := Summarize([]string{long, "end"})

	assert.Equal(t, SummaryMaxLen, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, " end"))
}

func TestAppendEventRefreshesSummary(t *testing.T) {
	now := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	s := Story{ID: "story-1"}

	assert.Equal(t, 0, s.AppendEvent("Serena returns.", now))
	assert.Equal(t, 1, s.AppendEvent("Blair schemes.", now))
	assert.Equal(t, "Serena returns. Blair schemes.", s.Summary)
	assert.Equal(t, now, s.UpdatedAt)
}

func TestSetRelationship(t *testing.T) {
	now := time.Now()
	s := Story{}

	s.SetRelationship("serena", "noah", "Romantic partner", now)
	s.SetRelationship("serena", "blair", "Best friend", now)
	assert.Equal(t, map[string]map[string]string{
		"serena": {"noah": "Romantic partner", "blair": "Best friend"},
	}, s.Relationships)

	s.SetRelationship("serena", "noah", "", now)
	s.SetRelationship("serena", "blair", "", now)
	assert.Empty(t, s.Relationships)
}

func TestForkIsDeepCopy(t *testing.T) {
	now := time.Now()
	src := Story{
		ID:              "story-1",
		Title:           "Original",
		Events:          []string{"one"},
		CharacterStates: map[string]Character{"chuck": {Name: "Chuck Bass", VoiceTraits: []string{"Low"}}},
		Relationships:   map[string]map[string]string{"chuck": {"blair": "Wife"}},
	}

	f := src.Fork("story-2", "", now)
	assert.Equal(t, "story-2", f.ID)
	assert.Equal(t, "Original", f.Title)
	assert.Equal(t, "story-1", f.ForkedFrom)

	f.Events[0] = "changed"
	f.CharacterStates["chuck"].VoiceTraits[0] = "changed"
	f.Relationships["chuck"]["blair"] = "changed"
	assert.Equal(t, "one", src.Events[0])
	assert.Equal(t, "Low", src.CharacterStates["chuck"].VoiceTraits[0])
	assert.Equal(t, "Wife", src.Relationships["chuck"]["blair"])

	assert.Equal(t, "Renamed", src.Fork("story-3", "Renamed", now).Title)
}
