package story

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// PromptEvents is how many of the latest scenes are quoted in a prompt.
const PromptEvents = 3

type PromptInput struct {
	Story     Story
	Rules     []string
	Direction string
}

// BuildPrompt assembles the narrator prompt for the next scene of a story.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder
	s := in.Story

	fmt.Fprintf(&b, "STORY: %s\n", s.Title)

	if len(in.Rules) > 0 {
		b.WriteString("\nCANON RULES:\n")
		for _, r := range in.Rules {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if len(s.CharacterStates) > 0 {
		b.WriteString("\nCHARACTERS:\n")
		for _, key := range slices.Sorted(maps.Keys(s.CharacterStates)) {
			c := s.CharacterStates[key]
			name := c.Name
			if name == "" {
				name = key
			}
			fmt.Fprintf(&b, "* %s\n", name)
			if c.Personality != "" {
				fmt.Fprintf(&b, "  Personality: %s\n", c.Personality)
			}
			if len(c.VoiceTraits) > 0 {
				fmt.Fprintf(&b, "  Voice: %s\n", strings.Join(c.VoiceTraits, ", "))
			}
			if c.SpeechStyle != "" {
				fmt.Fprintf(&b, "  Speech: %s\n", c.SpeechStyle)
			}
		}
	}

	if len(s.Relationships) > 0 {
		b.WriteString("\nRELATIONSHIPS:\n")
		for _, from := range slices.Sorted(maps.Keys(s.Relationships)) {
			rel := s.Relationships[from]
			for _, to := range slices.Sorted(maps.Keys(rel)) {
				fmt.Fprintf(&b, "- %s -> %s: %s\n", from, to, rel[to])
			}
		}
	}

	if s.Summary != "" {
		fmt.Fprintf(&b, "\nSUMMARY SO FAR:\n%s\n", s.Summary)
	}

	if n := len(s.Events); n > 0 {
		b.WriteString("\nRECENT SCENES:\n")
		for _, e := range s.Events[max(0, n-PromptEvents):] {
			fmt.Fprintf(&b, "> %s\n", e)
		}
	}

	if d := strings.TrimSpace(in.Direction); d != "" {
		fmt.Fprintf(&b, "\nDIRECTION:\n%s\n", d)
	}
	b.WriteString("\nWrite the next scene.")
	return b.String()
}
