package canon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GO-story/internal/canon"
)

func TestResolve(t *testing.T) {
	var table canon.Table

	for name, want := range map[string]string{
		"Serena":                 "serena",
		"serena van der woodsen": "serena",
		"  Blair Waldorf Bass ":  "blair",
		"Charles":                "chuck",
		"KLAUS":                  "niklaus",
		"daniel":                 "dan",
	} {
		got, ok := table.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := table.Resolve("georgina")
	assert.False(t, ok)
}

func TestCharactersAreCopies(t *testing.T) {
	var table canon.Table

	chars := table.Characters()
	require.Len(t, chars, 7)
	assert.Equal(t, "Chuck Bass", chars["chuck"].Name)

	chars["chuck"].Relationships["blair"] = "Stranger"
	chars["chuck"].VoiceTraits[0] = "Mumbling"

	again := table.Characters()
	assert.Equal(t, "Wife", again["chuck"].Relationships["blair"])
	assert.Equal(t, "Seductive", again["chuck"].VoiceTraits[0])
}

func TestRulesAreCopies(t *testing.T) {
	var table canon.Table

	rules := table.Rules()
	require.Len(t, rules, 11)
	rules[0] = "rewritten"
	assert.NotEqual(t, "rewritten", table.Rules()[0])
}

func TestProfiles(t *testing.T) {
	var table canon.Table

	// dan has an alias but no profile
	got := table.Profiles([]string{"Nik", "dan", "nobody", "Lily Rhodes"})
	assert.Len(t, got, 2)
	assert.Contains(t, got, "niklaus")
	assert.Contains(t, got, "lily")
}
