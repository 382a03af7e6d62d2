// Package story holds the role-play story model and the few views derived
// from it: rolling summary, milestone scenes, relationships and the narrator
// prompt.
package story

import (
	"errors"
	"maps"
	"slices"
	"time"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrStoryNotFound     = errors.New("story not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrInvalidInput      = errors.New("invalid input")
)

// Character matches a profile row in the characters table.
type Character struct {
	Name          string            `json:"name"`
	Personality   string            `json:"personality"`
	VoiceTraits   []string          `json:"voiceTraits"`
	Relationships map[string]string `json:"relationships"`
	SpeechStyle   string            `json:"speechStyle"`
}

// Clone returns a deep copy.
func (c Character) Clone() Character {
	c.VoiceTraits = slices.Clone(c.VoiceTraits)
	c.Relationships = maps.Clone(c.Relationships)
	return c
}

// Story matches the JSON document kept per row in the stories table.
type Story struct {
	ID              string                       `json:"id"`
	Title           string                       `json:"title"`
	Characters      []string                     `json:"characters"`
	CharacterStates map[string]Character         `json:"characterStates"`
	Events          []string                     `json:"events"`
	Summary         string                       `json:"summary"`
	Relationships   map[string]map[string]string `json:"relationships,omitempty"`
	ForkedFrom      string                       `json:"forkedFrom,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// Milestone is a scene that matched one of the milestone keywords.
type Milestone struct {
	ID         string    `json:"id"`
	StoryID    string    `json:"storyId"`
	Hash       string    `json:"hash"`
	Text       string    `json:"text"`
	Keyword    string    `json:"keyword"`
	EventIndex int       `json:"eventIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AppendEvent adds a scene and refreshes the rolling summary.
// It returns the index of the new event.
func (s *Story) AppendEvent(text string, now time.Time) int {
	s.Events = append(s.Events, text)
	s.Summary = Summarize(s.Events)
	s.UpdatedAt = now
	return len(s.Events) - 1
}

func (s *Story) SetCharacterState(key string, c Character, now time.Time) {
	if s.CharacterStates == nil {
		s.CharacterStates = map[string]Character{}
	}
	s.CharacterStates[key] = c
	s.UpdatedAt = now
}

// SetRelationship records how from sees to. An empty label drops the edge.
func (s *Story) SetRelationship(from, to, label string, now time.Time) {
	if label == "" {
		if rel, ok := s.Relationships[from]; ok {
			delete(rel, to)
			if len(rel) == 0 {
				delete(s.Relationships, from)
			}
		}
		s.UpdatedAt = now
		return
	}
	if s.Relationships == nil {
		s.Relationships = map[string]map[string]string{}
	}
	if s.Relationships[from] == nil {
		s.Relationships[from] = map[string]string{}
	}
	s.Relationships[from][to] = label
	s.UpdatedAt = now
}

// Clone returns a deep copy.
func (s Story) Clone() Story {
	s.Characters = slices.Clone(s.Characters)
	s.Events = slices.Clone(s.Events)
	if s.CharacterStates != nil {
		states := make(map[string]Character, len(s.CharacterStates))
		for k, c := range s.CharacterStates {
			states[k] = c.Clone()
		}
		s.CharacterStates = states
	}
	if s.Relationships != nil {
		rels := make(map[string]map[string]string, len(s.Relationships))
		for k, r := range s.Relationships {
			rels[k] = maps.Clone(r)
		}
		s.Relationships = rels
	}
	return s
}

// Fork copies the story under a new id. Milestones are not carried over.
func (s Story) Fork(id, title string, now time.Time) Story {
	f := s.Clone()
	f.ID = id
	if title != "" {
		f.Title = title
	}
	f.ForkedFrom = s.ID
	f.CreatedAt = now
	f.UpdatedAt = now
	return f
}
