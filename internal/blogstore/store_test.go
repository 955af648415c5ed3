package blogstore

import (
	"context"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Post{
		VideoID:     "dQw4w9WgXcQ",
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:       "A Post",
		Description: "About a video.",
		Content:     "# Body",
		Transcript:  "spoken words",
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || saved.CreatedAt == "" {
		t.Errorf("id/timestamps not filled: %+v", saved)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "A Post" || got.Transcript != "spoken words" {
		t.Errorf("got %+v", got)
	}
}

func TestSaveValidation(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Save(context.Background(), Post{Title: "no content"}); err == nil {
		t.Error("expected validation error")
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListSkipsUnreadableRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Recreate the table without NOT NULL so a corrupt row can exist;
	// NULL content fails the string scan in List.
	if _, err := s.db.Exec(`DROP TABLE posts`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec(`CREATE TABLE posts (
		id TEXT PRIMARY KEY, video_id TEXT, url TEXT, title TEXT,
		description TEXT, content TEXT, transcript TEXT,
		created_at TEXT, updated_at TEXT
	)`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec(`INSERT INTO posts (id, video_id, url, title, content, created_at, updated_at)
		VALUES ('good', 'v', 'u', 'Good', 'body', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z'),
		       ('bad', 'v', 'u', 'Bad', NULL, '2026-01-02T00:00:00Z', '2026-01-02T00:00:00Z')`); err != nil {
		t.Fatal(err)
	}

	posts, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].ID != "good" {
		t.Errorf("posts = %+v, want only the readable row", posts)
	}
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		p, err := s.Save(ctx, Post{VideoID: "v", URL: "u", Title: title, Content: "c"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, p.ID)
	}

	posts, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 3 {
		t.Fatalf("len = %d, want 3", len(posts))
	}
	for _, p := range posts {
		if p.Transcript != "" {
			t.Error("list should omit transcripts")
		}
	}

	if err := s.Delete(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, ids[0]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	posts, err = s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Errorf("len = %d, want 2", len(posts))
	}
}
