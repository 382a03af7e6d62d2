// Package store implements the story record store on process memory, a
// local SQLite file and a remote Supabase project.
package store

import (
	"context"
	"sync"

	"GO-story/internal/story"
)

var (
	_ story.Store = (*Memory)(nil)
	_ story.Store = (*SQLite)(nil)
	_ story.Store = (*Supabase)(nil)
)

// Memory keeps every record in process memory. Values are copied on the
// way in and out.
type Memory struct {
	mu         sync.RWMutex
	stories    map[string]story.Story
	characters map[string]story.Character
	milestones map[string][]story.Milestone
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		stories:    map[string]story.Story{},
		characters: map[string]story.Character{},
		milestones: map[string][]story.Milestone{},
	}
}

func (m *Memory) GetStory(ctx context.Context, id string) (story.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stories[id]
	if !ok {
		return story.Story{}, story.ErrNotFound
	}
	return s.Clone(), nil
}

func (m *Memory) PutStory(ctx context.Context, s story.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stories[s.ID] = s.Clone()
	return nil
}

func (m *Memory) DeleteStory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stories, id)
	return nil
}

func (m *Memory) ListStories(ctx context.Context) ([]story.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]story.Story, 0, len(m.stories))
	for _, s := range m.stories {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (m *Memory) GetCharacter(ctx context.Context, id string) (story.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.characters[id]
	if !ok {
		return story.Character{}, story.ErrNotFound
	}
	return c.Clone(), nil
}

func (m *Memory) PutCharacter(ctx context.Context, id string, c story.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters[id] = c.Clone()
	return nil
}

func (m *Memory) ListCharacters(ctx context.Context) (map[string]story.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]story.Character, len(m.characters))
	for id, c := range m.characters {
		out[id] = c.Clone()
	}
	return out, nil
}

func (m *Memory) AddMilestone(ctx context.Context, ms story.Milestone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.milestones[ms.StoryID] = append(m.milestones[ms.StoryID], ms)
	return nil
}

func (m *Memory) ListMilestones(ctx context.Context, storyID string) ([]story.Milestone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]story.Milestone, len(m.milestones[storyID]))
	copy(out, m.milestones[storyID])
	return out, nil
}

func (m *Memory) DeleteMilestones(ctx context.Context, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.milestones, storyID)
	return nil
}
