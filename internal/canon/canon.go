// Package canon is the static reference table served verbatim by the API:
// canon rules, character aliases and the canonical character profiles.
package canon

import (
	"strings"

	"GO-story/internal/story"
)

var rules = []string{
	"Gossip Girl's narration ended in Season 6 finale. Dan was revealed as Gossip Girl.",
	"Chuck and Blair are married and have a son, Henry.",
	"Chuck was legally adopted by Lily van der Woodsen during her marriage to Bart Bass.",
	"Serena is the daughter of Lily and William. Her brother is Eric.",
	"Lily and William were shown together in the finale, suggesting remarriage.",
	"Chuck and Serena are adoptive siblings. Their relationship is loyal and emotionally bonded.",
	"Niklaus Von Wolfram is not romantically involved with Serena by default. All intimacy must be earned narratively.",
	"Narrative voice must be third-person limited, elevated, and emotionally nuanced.",
	"No meta-commentary, fanfic tropes, or anachronisms unless in AU mode.",
	"Each option must dramatize change, emotion, or truth—not simply offer filler or directionless choices.",
	"Do not pre-load romantic intimacy unless canon or established in-story.",
}

var aliases = map[string]string{
	"serena": "serena", "serena van der woodsen": "serena",
	"blair": "blair", "blair waldorf": "blair", "blair waldorf bass": "blair",
	"chuck": "chuck", "charles": "chuck", "chuck bass": "chuck",
	"lily": "lily", "lily van der woodsen": "lily", "lily rhodes": "lily",
	"niklaus": "niklaus", "nik": "niklaus", "klaus": "niklaus",
	"noah": "noah", "noah von wolfram": "noah",
	"dan": "dan", "daniel": "dan",
	"vivian": "vivian",
}

var characters = map[string]story.Character{
	"serena": {
		Name:        "Serena van der Woodsen",
		Personality: "Warm, magnetic, laid-back, spontaneous, and emotionally intuitive.",
		VoiceTraits: []string{"Light but emotionally weighted", "Charismatic", "Playful subtext"},
		Relationships: map[string]string{
			"blair": "Best friend, rival", "dan": "Ex-husband", "chuck": "Adoptive brother",
			"lily": "Mother", "william": "Father", "noah": "Romantic partner",
		},
		SpeechStyle: "Witty, soft, unfiltered, emotionally immediate.",
	},
	"blair": {
		Name:        "Blair Waldorf",
		Personality: "Ambitious, strategic, fashion-forward, sharp-tongued.",
		VoiceTraits: []string{"Witty", "Poised", "Emotionally barbed"},
		Relationships: map[string]string{
			"serena": "Best friend and rival", "chuck": "Husband", "eleanor": "Mother",
		},
		SpeechStyle: "Elegant, biting, performative.",
	},
	"noah": {
		Name:        "Noah von Wolfram",
		Personality: "Disciplined, exacting, emotionally reserved, and logical.",
		VoiceTraits: []string{"Dry wit", "Minimalist", "Introspective"},
		Relationships: map[string]string{
			"serena": "Romantic partner", "otto": "Father", "niklaus": "Cousin",
		},
		SpeechStyle: "Minimal, deliberate.",
	},
	"niklaus": {
		Name:        "Niklaus von Wolfram",
		Personality: "F1 driver and architect. Brilliant, sensual, emotionally complex.",
		VoiceTraits: []string{"Quiet intensity", "Boyish charm", "European polish"},
		Relationships: map[string]string{
			"noah": "Cousin", "otto": "Uncle", "vivian": "Half-sister",
		},
		SpeechStyle: "Clipped, intelligent, formal with subtext.",
	},
	"vivian": {
		Name:        "Vivian Taylor",
		Personality: "British wit, glamorous, sardonic. Emotionally guarded.",
		VoiceTraits: []string{"Sardonic", "Charismatic", "Complex"},
		Relationships: map[string]string{
			"niklaus": "Half-brother", "noah": "Half-cousin",
		},
		SpeechStyle: "Elegant, sharp, ironic.",
	},
	"lily": {
		Name:        "Lily van der Woodsen",
		Personality: "Elegant, composed, maternal. Privately conflicted.",
		VoiceTraits: []string{"Sincere", "Polished", "Resilient"},
		Relationships: map[string]string{
			"serena": "Daughter", "chuck": "Adoptive son",
		},
		SpeechStyle: "Measured, warm, restrained.",
	},
	"chuck": {
		Name:        "Chuck Bass",
		Personality: "Darkly romantic, intelligent, controlled. Deeply loyal.",
		VoiceTraits: []string{"Seductive", "Calculated", "Emotionally charged"},
		Relationships: map[string]string{
			"blair": "Wife", "serena": "Adoptive sister", "lily": "Adoptive mother",
		},
		SpeechStyle: "Low, deliberate, suggestive.",
	},
}

// Table serves the canon. The zero value is ready to use.
type Table struct{}

// Rules returns a copy of the canon rules in their fixed order.
func (Table) Rules() []string {
	out := make([]string, len(rules))
	copy(out, rules)
	return out
}

// Resolve maps a character name or alias to its canonical key.
func (Table) Resolve(name string) (string, bool) {
	key, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

func (Table) Characters() map[string]story.Character {
	out := make(map[string]story.Character, len(characters))
	for k, c := range characters {
		out[k] = c.Clone()
	}
	return out
}

// Profiles returns the canonical profiles of the given cast. Names without a
// canonical profile are skipped.
func (t Table) Profiles(names []string) map[string]story.Character {
	out := map[string]story.Character{}
	for _, n := range names {
		key, ok := t.Resolve(n)
		if !ok {
			continue
		}
		if c, ok := characters[key]; ok {
			out[key] = c.Clone()
		}
	}
	return out
}
