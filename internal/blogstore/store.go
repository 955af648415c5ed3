// Package blogstore persists generated blog posts in a local SQLite database.
package blogstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Post is one stored blog post.
type Post struct {
	ID          string `json:"id"`
	VideoID     string `json:"video_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Transcript  string `json:"transcript,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ErrNotFound is returned when no post matches the requested id.
var ErrNotFound = errors.New("post not found")

// Store wraps the posts database.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the posts database inside dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("blogstore: mkdir %s: %w", dir, err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "posts.db"))
	if err != nil {
		return nil, fmt.Errorf("blogstore: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("blogstore: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS posts (
		id          TEXT PRIMARY KEY,
		video_id    TEXT NOT NULL,
		url         TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT,
		content     TEXT NOT NULL,
		transcript  TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save inserts a new post and returns it with id and timestamps filled in.
func (s *Store) Save(ctx context.Context, p Post) (Post, error) {
	if p.Title == "" || p.Content == "" {
		return Post{}, errors.New("blogstore: title and content are required")
	}
	p.ID = uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, video_id, url, title, description, content, transcript, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.VideoID, p.URL, p.Title, p.Description, p.Content, p.Transcript, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return Post{}, fmt.Errorf("blogstore: insert: %w", err)
	}
	return p, nil
}

// Get returns the post with the given id.
func (s *Store) Get(ctx context.Context, id string) (Post, error) {
	var p Post
	var description, transcript sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, video_id, url, title, description, content, transcript, created_at, updated_at
		 FROM posts WHERE id = ?`, id,
	).Scan(&p.ID, &p.VideoID, &p.URL, &p.Title, &description, &p.Content, &transcript, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("blogstore: get: %w", err)
	}
	p.Description = description.String
	p.Transcript = transcript.String
	return p, nil
}

// List returns posts, newest first. Transcript bodies are omitted to keep
// listings small.
func (s *Store) List(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, url, title, description, content, created_at, updated_at
		 FROM posts ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("blogstore: list: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.VideoID, &p.URL, &p.Title, &description, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			slog.Warn("blogstore: skipping unreadable row", slog.Any("error", err))
			continue
		}
		p.Description = description.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Delete removes the post with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("blogstore: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
