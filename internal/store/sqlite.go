package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"GO-story/internal/story"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS stories (id TEXT PRIMARY KEY, data TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS characters (id TEXT PRIMARY KEY, data TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS milestones (id TEXT PRIMARY KEY, story_id TEXT NOT NULL, data TEXT NOT NULL);
`

// SQLite keeps each record as a JSON document in a local database file.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) GetStory(ctx context.Context, id string) (story.Story, error) {
	var st story.Story
	if err := s.getJSON(ctx, "SELECT data FROM stories WHERE id = ?", id, &st); err != nil {
		return story.Story{}, err
	}
	return st, nil
}

func (s *SQLite) PutStory(ctx context.Context, st story.Story) error {
	return s.putJSON(ctx, "INSERT OR REPLACE INTO stories (id, data) VALUES (?, ?)", st.ID, st)
}

func (s *SQLite) DeleteStory(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM stories WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

func (s *SQLite) ListStories(ctx context.Context) ([]story.Story, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM stories")
	if err != nil {
		return nil, fmt.Errorf("query stories: %w", err)
	}
	defer rows.Close()

	out := []story.Story{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		var st story.Story
		if err := json.Unmarshal([]byte(data), &st); err != nil {
			return nil, fmt.Errorf("decode story: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLite) GetCharacter(ctx context.Context, id string) (story.Character, error) {
	var c story.Character
	if err := s.getJSON(ctx, "SELECT data FROM characters WHERE id = ?", id, &c); err != nil {
		return story.Character{}, err
	}
	return c, nil
}

func (s *SQLite) PutCharacter(ctx context.Context, id string, c story.Character) error {
	return s.putJSON(ctx, "INSERT OR REPLACE INTO characters (id, data) VALUES (?, ?)", id, c)
}

func (s *SQLite) ListCharacters(ctx context.Context) (map[string]story.Character, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, data FROM characters")
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	out := map[string]story.Character{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		var c story.Character
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("decode character %s: %w", id, err)
		}
		out[id] = c
	}
	return out, rows.Err()
}

func (s *SQLite) AddMilestone(ctx context.Context, m story.Milestone) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode milestone: %w", err)
	}
	if _, err := s.db.ExecContext(
		ctx,
		"INSERT INTO milestones (id, story_id, data) VALUES (?, ?, ?)",
		m.ID, m.StoryID, string(data),
	); err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	return nil
}

func (s *SQLite) ListMilestones(ctx context.Context, storyID string) ([]story.Milestone, error) {
	rows, err := s.db.QueryContext(
		ctx, "SELECT data FROM milestones WHERE story_id = ? ORDER BY rowid", storyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	defer rows.Close()

	out := []story.Milestone{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		var m story.Milestone
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("decode milestone: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLite) DeleteMilestones(ctx context.Context, storyID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM milestones WHERE story_id = ?", storyID); err != nil {
		return fmt.Errorf("delete milestones: %w", err)
	}
	return nil
}

func (s *SQLite) getJSON(ctx context.Context, query, id string, v any) error {
	var data string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return story.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("decode %s: %w", id, err)
	}
	return nil
}

func (s *SQLite) putJSON(ctx context.Context, query, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	if _, err := s.db.ExecContext(ctx, query, id, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}
