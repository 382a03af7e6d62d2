package story

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoNarrator     = errors.New("narrator is not configured")
	ErrNarratorFailed = errors.New("narrator failed")
)

// Store is the key-value record store behind the service.
// Getters return ErrNotFound for an unknown id.
type Store interface {
	GetStory(ctx context.Context, id string) (Story, error)
	PutStory(ctx context.Context, s Story) error
	DeleteStory(ctx context.Context, id string) error
	ListStories(ctx context.Context) ([]Story, error)

	GetCharacter(ctx context.Context, id string) (Character, error)
	PutCharacter(ctx context.Context, id string, c Character) error
	ListCharacters(ctx context.Context) (map[string]Character, error)

	AddMilestone(ctx context.Context, m Milestone) error
	ListMilestones(ctx context.Context, storyID string) ([]Milestone, error)
	DeleteMilestones(ctx context.Context, storyID string) error
}

// Reference is the static canon: rules, aliases and character profiles.
type Reference interface {
	Rules() []string
	Resolve(name string) (string, bool)
	Characters() map[string]Character
	Profiles(names []string) map[string]Character
}

// Narrator writes the next scene from an assembled prompt.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// Service is every story operation the API serves.
type Service struct {
	store    Store
	ref      Reference
	narrator Narrator
	now      func() time.Time

	// serializes read-modify-write of story documents
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithNarrator enables Continue.
func WithNarrator(n Narrator) Option {
	return func(s *Service) { s.narrator = n }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a Service over store and the canon in ref.
func NewService(store Store, ref Reference, opts ...Option) *Service {
	s := &Service{store: store, ref: ref, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the canon rules.
func (s *Service) Rules() []string {
	return s.ref.Rules()
}

// key maps a name to its canonical key, or its lowercase form when no alias
// matches.
func (s *Service) key(name string) string {
	if k, ok := s.ref.Resolve(name); ok {
		return k
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// SeedCharacters stores every canonical profile missing from the store.
func (s *Service) SeedCharacters(ctx context.Context) ([]string, error) {
	existing, err := s.store.ListCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	var added []string
	canon := s.ref.Characters()
	for _, id := range slices.Sorted(maps.Keys(canon)) {
		if _, ok := existing[id]; ok {
			continue
		}
		if err := s.store.PutCharacter(ctx, id, canon[id]); err != nil {
			return added, fmt.Errorf("seed character %s: %w", id, err)
		}
		added = append(added, id)
	}
	return added, nil
}

// ListCharacters returns every stored profile keyed by id.
func (s *Service) ListCharacters(ctx context.Context) (map[string]Character, error) {
	return s.store.ListCharacters(ctx)
}

// GetCharacter looks a profile up by name or alias.
// It returns ErrCharacterNotFound when nothing is stored under the key.
func (s *Service) GetCharacter(ctx context.Context, name string) (Character, error) {
	c, err := s.store.GetCharacter(ctx, s.key(name))
	if errors.Is(err, ErrNotFound) {
		return Character{}, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
	}
	return c, err
}

// SaveCharacter creates or replaces a profile and returns the key it was
// stored under.
func (s *Service) SaveCharacter(ctx context.Context, name string, c Character) (string, error) {
	key := s.key(name)
	if key == "" {
		return "", fmt.Errorf("%w: character name is required", ErrInvalidInput)
	}
	if err := s.store.PutCharacter(ctx, key, c); err != nil {
		return "", fmt.Errorf("save character %s: %w", key, err)
	}
	return key, nil
}

// CreateStory starts an empty story. Canonical members of the cast get
// their profile copied into the story's character states.
func (s *Service) CreateStory(ctx context.Context, title string, characters []string) (Story, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Story{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextStoryID(ctx)
	if err != nil {
		return Story{}, err
	}

	now := s.now()
	st := Story{
		ID:         id,
		Title:      title,
		Characters: make([]string, 0, len(characters)),
		Events:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, name := range characters {
		key := s.key(name)
		if key == "" || slices.Contains(st.Characters, key) {
			continue
		}
		st.Characters = append(st.Characters, key)
	}
	st.CharacterStates = s.ref.Profiles(st.Characters)

	if err := s.store.PutStory(ctx, st); err != nil {
		return Story{}, fmt.Errorf("save story %s: %w", id, err)
	}
	return st, nil
}

// nextStoryID picks story-<count+1>, bumping past ids still in use.
func (s *Service) nextStoryID(ctx context.Context) (string, error) {
	all, err := s.store.ListStories(ctx)
	if err != nil {
		return "", fmt.Errorf("list stories: %w", err)
	}
	used := make(map[string]struct{}, len(all))
	for _, st := range all {
		used[st.ID] = struct{}{}
	}
	for n := len(all) + 1; ; n++ {
		id := fmt.Sprintf("story-%d", n)
		if _, ok := used[id]; !ok {
			return id, nil
		}
	}
}

// GetStory returns ErrStoryNotFound for an unknown id.
func (s *Service) GetStory(ctx context.Context, id string) (Story, error) {
	st, err := s.store.GetStory(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
	}
	if err != nil {
		return Story{}, fmt.Errorf("load story %s: %w", id, err)
	}
	return st, nil
}

// ListStories returns stories oldest first.
func (s *Service) ListStories(ctx context.Context) ([]Story, error) {
	all, err := s.store.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	slices.SortFunc(all, func(a, b Story) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return all, nil
}

// DeleteStory removes a story and its milestones.
func (s *Service) DeleteStory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetStory(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteMilestones(ctx, id); err != nil {
		return fmt.Errorf("delete milestones of %s: %w", id, err)
	}
	if err := s.store.DeleteStory(ctx, id); err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	return nil
}

// ForkStory copies a story under a fresh id. An empty title keeps the
// original one.
func (s *Service) ForkStory(ctx context.Context, id, title string) (Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.GetStory(ctx, id)
	if err != nil {
		return Story{}, err
	}
	newID, err := s.nextStoryID(ctx)
	if err != nil {
		return Story{}, err
	}
	f := src.Fork(newID, strings.TrimSpace(title), s.now())
	if err := s.store.PutStory(ctx, f); err != nil {
		return Story{}, fmt.Errorf("save story %s: %w", newID, err)
	}
	return f, nil
}

// AddEvent appends a scene. When the scene hits a milestone keyword and the
// same text was not logged before, the new milestone is returned too.
func (s *Service) AddEvent(ctx context.Context, id, text string) (Story, *Milestone, error) {
	if strings.TrimSpace(text) == "" {
		return Story{}, nil, fmt.Errorf("%w: event text is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.GetStory(ctx, id)
	if err != nil {
		return Story{}, nil, err
	}
	now := s.now()
	idx := len(st.Events)

	// milestone first: after a failed story save the retry lands on idx again
	var logged *Milestone
	if kw, ok := IsMilestoneWorthy(text); ok {
		prior, err := s.store.ListMilestones(ctx, id)
		if err != nil {
			return Story{}, nil, fmt.Errorf("list milestones of %s: %w", id, err)
		}
		if !AlreadyLogged(prior, text) {
			m := Milestone{
				ID:         uuid.NewString(),
				StoryID:    id,
				Hash:       SceneHash(text),
				Text:       strings.TrimSpace(text),
				Keyword:    kw,
				EventIndex: idx,
				CreatedAt:  now,
			}
			if err := s.store.AddMilestone(ctx, m); err != nil {
				return Story{}, nil, fmt.Errorf("save milestone of %s: %w", id, err)
			}
			logged = &m
		}
	}

	st.AppendEvent(text, now)
	if err := s.store.PutStory(ctx, st); err != nil {
		return Story{}, nil, fmt.Errorf("save story %s: %w", id, err)
	}
	return st, logged, nil
}

// UpdateCharacterState overrides a character's profile within one story and
// returns the key it was stored under.
func (s *Service) UpdateCharacterState(ctx context.Context, id, name string, c Character) (string, error) {
	key := s.key(name)
	if key == "" {
		return "", fmt.Errorf("%w: character name is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.GetStory(ctx, id)
	if err != nil {
		return "", err
	}
	st.SetCharacterState(key, c, s.now())
	if err := s.store.PutStory(ctx, st); err != nil {
		return "", fmt.Errorf("save story %s: %w", id, err)
	}
	return key, nil
}

// SetRelationship labels how from relates to to within one story and
// returns the updated relationships. An empty label removes the edge.
func (s *Service) SetRelationship(ctx context.Context, id, from, to, label string) (map[string]map[string]string, error) {
	from, to = s.key(from), s.key(to)
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: both characters are required", ErrInvalidInput)
	}
	if from == to {
		return nil, fmt.Errorf("%w: a character can not relate to itself", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	st.SetRelationship(from, to, strings.TrimSpace(label), s.now())
	if err := s.store.PutStory(ctx, st); err != nil {
		return nil, fmt.Errorf("save story %s: %w", id, err)
	}
	return st.Relationships, nil
}

// Relationships returns the tracked relationships of a story.
func (s *Service) Relationships(ctx context.Context, id string) (map[string]map[string]string, error) {
	st, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.Relationships == nil {
		return map[string]map[string]string{}, nil
	}
	return st.Relationships, nil
}

// Summary returns the rolling summary of a story.
func (s *Service) Summary(ctx context.Context, id string) (string, error) {
	st, err := s.GetStory(ctx, id)
	if err != nil {
		return "", err
	}
	return st.Summary, nil
}

// Milestones lists the milestones of a story in the order they were logged.
func (s *Service) Milestones(ctx context.Context, id string) ([]Milestone, error) {
	if _, err := s.GetStory(ctx, id); err != nil {
		return nil, err
	}
	ms, err := s.store.ListMilestones(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list milestones of %s: %w", id, err)
	}
	slices.SortStableFunc(ms, func(a, b Milestone) int {
		return cmp.Compare(a.EventIndex, b.EventIndex)
	})
	return ms, nil
}

// Prompt assembles the narrator prompt for the next scene.
func (s *Service) Prompt(ctx context.Context, id, direction string) (string, error) {
	st, err := s.GetStory(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildPrompt(PromptInput{Story: st, Rules: s.ref.Rules(), Direction: direction}), nil
}

// Continue asks the narrator for the next scene and appends it as an event.
func (s *Service) Continue(ctx context.Context, id, direction string) (string, Story, *Milestone, error) {
	if s.narrator == nil {
		return "", Story{}, nil, ErrNoNarrator
	}
	prompt, err := s.Prompt(ctx, id, direction)
	if err != nil {
		return "", Story{}, nil, err
	}
	scene, err := s.narrator.Narrate(ctx, prompt)
	if err != nil {
		return "", Story{}, nil, fmt.Errorf("%w: narrate %s: %w", ErrNarratorFailed, id, err)
	}
	scene = strings.TrimSpace(scene)
	if scene == "" {
		return "", Story{}, nil, fmt.Errorf("%w: narrate %s: empty scene", ErrNarratorFailed, id)
	}
	st, m, err := s.AddEvent(ctx, id, scene)
	if err != nil {
		return "", Story{}, nil, err
	}
	return scene, st, m, nil
}
