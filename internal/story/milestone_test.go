package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMilestoneWorthy(t *testing.T) {
	for text, want := range map[string]string{
		"Chuck whispers: I love you.":         "i love you",
		"“I’m pregnant,” Blair says.":         "i'm pregnant",
		"I'm pregnant.":                       "i'm pregnant",
		"Serena STORMED OUT of the party":     "stormed out",
		"They got married at the Empire.":     "got married",
		"It's her birthday at the Met Gala.":  "birthday",
		"The confession came after midnight.": "confession",
	} {
		kw, ok := IsMilestoneWorthy(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, kw, text)
	}

	for _, text := range []string{"", "Lunch at the Palace.", "She was engaging."} {
		_, ok := IsMilestoneWorthy(text)
		assert.False(t, ok, text)
	}
}

func TestSceneHashIgnoresSurroundingSpace(t *testing.T) {
	assert.Equal(t, SceneHash("They kissed."), SceneHash("  They kissed.\n"))
	assert.NotEqual(t, SceneHash("They kissed."), SceneHash("They kissed!"))
	assert.Len(t, SceneHash("x"), 32)
	assert.Equal(t, strings.ToLower(SceneHash("x")), SceneHash("x"))
}

func TestAlreadyLogged(t *testing.T) {
	logged := []Milestone{{Hash: SceneHash("They kissed.")}}

	assert.True(t, AlreadyLogged(logged, " They kissed. "))
	assert.False(t, AlreadyLogged(logged, "They cried."))
	assert.False(t, AlreadyLogged(nil, "They kissed."))
}
