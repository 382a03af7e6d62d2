package store_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GO-story/internal/store"
	"GO-story/internal/story"
)

// fakeRest answers the subset of PostgREST used by the store: select and
// delete with eq filters, plus insert/upsert of a single row.
type fakeRest struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
}

func (f *fakeRest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	match := func(row map[string]any) bool {
		for _, col := range []string{"id", "story_id"} {
			if want := r.URL.Query().Get(col); want != "" {
				if v, _ := row[col].(string); "eq."+v != want {
					return false
				}
			}
		}
		return true
	}

	switch r.Method {
	case http.MethodGet:
		out := []map[string]any{}
		for _, row := range f.tables[table] {
			if match(row) {
				out = append(out, row)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		var row map[string]any
		if err := json.Unmarshal(body, &row); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows := f.tables[table][:0:0]
		for _, old := range f.tables[table] {
			if old["id"] != row["id"] {
				rows = append(rows, old)
			}
		}
		f.tables[table] = append(rows, row)
		w.WriteHeader(http.StatusCreated)
	case http.MethodDelete:
		rows := f.tables[table][:0:0]
		for _, row := range f.tables[table] {
			if !match(row) {
				rows = append(rows, row)
			}
		}
		f.tables[table] = rows
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestSupabase(t *testing.T) {
	srv := httptest.NewServer(&fakeRest{tables: map[string][]map[string]any{}})
	defer srv.Close()

	s, err := store.DialSupabase(srv.URL, "service-key")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.GetStory(ctx, "story-1")
	require.ErrorIs(t, err, story.ErrNotFound)

	require.NoError(t, s.PutStory(ctx, story.Story{ID: "story-1", Title: "Thanksgiving", Events: []string{"Pie."}}))
	require.NoError(t, s.PutStory(ctx, story.Story{ID: "story-1", Title: "Thanksgiving II"}))
	got, err := s.GetStory(ctx, "story-1")
	require.NoError(t, err)
	assert.Equal(t, "Thanksgiving II", got.Title)

	all, err := s.ListStories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.PutCharacter(ctx, "dan", story.Character{Name: "Dan Humphrey"}))
	chars, err := s.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dan Humphrey", chars["dan"].Name)

	require.NoError(t, s.AddMilestone(ctx, story.Milestone{ID: "m1", StoryID: "story-1", Text: "They kissed."}))
	ms, err := s.ListMilestones(ctx, "story-1")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "They kissed.", ms[0].Text)

	require.NoError(t, s.DeleteMilestones(ctx, "story-1"))
	require.NoError(t, s.DeleteStory(ctx, "story-1"))
	_, err = s.GetStory(ctx, "story-1")
	assert.ErrorIs(t, err, story.ErrNotFound)
	ms, err = s.ListMilestones(ctx, "story-1")
	require.NoError(t, err)
	assert.Empty(t, ms)
}
