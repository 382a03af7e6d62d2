package store

import (
	"context"
	"fmt"

	supa "github.com/supabase-community/supabase-go"

	"GO-story/internal/story"
)

// Table names in the Supabase project. Each table has an `id` text primary
// key and a `data` jsonb column; milestones carry a `story_id` column too.
const (
	storiesTable    = "stories"
	charactersTable = "characters"
	milestonesTable = "milestones"
)

type storyRow struct {
	ID   string      `json:"id"`
	Data story.Story `json:"data"`
}

type characterRow struct {
	ID   string          `json:"id"`
	Data story.Character `json:"data"`
}

type milestoneRow struct {
	ID      string          `json:"id"`
	StoryID string          `json:"story_id"`
	Data    story.Milestone `json:"data"`
}

// Supabase keeps records in a remote Supabase project through its REST API.
// The client does not take a context, so ctx is only checked before each
// call.
type Supabase struct {
	client *supa.Client
}

// DialSupabase connects to the project at url with the given service key.
func DialSupabase(url, key string) (*Supabase, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to supabase: %w", err)
	}
	return NewSupabase(client), nil
}

// NewSupabase wraps an existing client.
func NewSupabase(client *supa.Client) *Supabase {
	return &Supabase{client: client}
}

func (s *Supabase) GetStory(ctx context.Context, id string) (story.Story, error) {
	if err := ctx.Err(); err != nil {
		return story.Story{}, err
	}
	var rows []storyRow
	if _, err := s.client.From(storiesTable).Select("*", "", false).Eq("id", id).ExecuteTo(&rows); err != nil {
		return story.Story{}, fmt.Errorf("select story %s: %w", id, err)
	}
	if len(rows) == 0 {
		return story.Story{}, story.ErrNotFound
	}
	return rows[0].Data, nil
}

func (s *Supabase) PutStory(ctx context.Context, st story.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := storyRow{ID: st.ID, Data: st}
	if _, _, err := s.client.From(storiesTable).Upsert(row, "id", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("upsert story %s: %w", st.ID, err)
	}
	return nil
}

func (s *Supabase) DeleteStory(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(storiesTable).Delete("minimal", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) ListStories(ctx context.Context) ([]story.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []storyRow
	if _, err := s.client.From(storiesTable).Select("*", "", false).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("select stories: %w", err)
	}
	out := make([]story.Story, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Data)
	}
	return out, nil
}

func (s *Supabase) GetCharacter(ctx context.Context, id string) (story.Character, error) {
	if err := ctx.Err(); err != nil {
		return story.Character{}, err
	}
	var rows []characterRow
	if _, err := s.client.From(charactersTable).Select("*", "", false).Eq("id", id).ExecuteTo(&rows); err != nil {
		return story.Character{}, fmt.Errorf("select character %s: %w", id, err)
	}
	if len(rows) == 0 {
		return story.Character{}, story.ErrNotFound
	}
	return rows[0].Data, nil
}

func (s *Supabase) PutCharacter(ctx context.Context, id string, c story.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := characterRow{ID: id, Data: c}
	if _, _, err := s.client.From(charactersTable).Upsert(row, "id", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("upsert character %s: %w", id, err)
	}
	return nil
}

func (s *Supabase) ListCharacters(ctx context.Context) (map[string]story.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []characterRow
	if _, err := s.client.From(charactersTable).Select("*", "", false).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("select characters: %w", err)
	}
	out := make(map[string]story.Character, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Data
	}
	return out, nil
}

func (s *Supabase) AddMilestone(ctx context.Context, m story.Milestone) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := milestoneRow{ID: m.ID, StoryID: m.StoryID, Data: m}
	if _, _, err := s.client.From(milestonesTable).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("insert milestone for %s: %w", m.StoryID, err)
	}
	return nil
}

func (s *Supabase) ListMilestones(ctx context.Context, storyID string) ([]story.Milestone, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []milestoneRow
	if _, err := s.client.From(milestonesTable).Select("*", "", false).Eq("story_id", storyID).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("select milestones of %s: %w", storyID, err)
	}
	out := make([]story.Milestone, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Data)
	}
	return out, nil
}

func (s *Supabase) DeleteMilestones(ctx context.Context, storyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(milestonesTable).Delete("minimal", "").Eq("story_id", storyID).Execute(); err != nil {
		return fmt.Errorf("delete milestones of %s: %w", storyID, err)
	}
	return nil
}
