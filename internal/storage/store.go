// Package storage persists viewer state in a sqlite-backed key-value
// namespace. Values are whole JSON collections; every mutation is a
// read-modify-write of the full collection. Two processes sharing one
// database therefore race with last-write-wins semantics — a known
// limitation, not a contract.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/glabrego/griddit/internal/media"
)

const (
	keySettings      = "settings"
	keySavedPosts    = "savedPosts"
	keyFollowedSubs  = "followedSubs"
	keyFollowedUsers = "followedUsers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init creates the schema and seeds every key that does not exist yet,
// so a fresh database starts with defaults and empty collections.
func (s *Store) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	seeds := []struct {
		key   string
		value any
	}{
		{keySettings, DefaultSettings()},
		{keySavedPosts, []media.Post{}},
		{keyFollowedSubs, []string{}},
		{keyFollowedUsers, []string{}},
	}
	for _, seed := range seeds {
		encoded, err := json.Marshal(seed.value)
		if err != nil {
			return fmt.Errorf("encode seed %s: %w", seed.key, err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
			seed.key, string(encoded))
		if err != nil {
			return fmt.Errorf("seed %s: %w", seed.key, err)
		}
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, string(encoded))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	if err := s.get(ctx, keySettings, &settings); err != nil {
		return Settings{}, err
	}
	return settings.Normalize(), nil
}

func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	return s.set(ctx, keySettings, settings.Normalize())
}

func (s *Store) SavedPosts(ctx context.Context) ([]media.Post, error) {
	var posts []media.Post
	if err := s.get(ctx, keySavedPosts, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SavePost bookmarks a post. Saving an already saved id is a no-op.
func (s *Store) SavePost(ctx context.Context, post media.Post) error {
	posts, err := s.SavedPosts(ctx)
	if err != nil {
		return err
	}
	exists := lo.ContainsBy(posts, func(p media.Post) bool { return p.ID == post.ID })
	if exists {
		return nil
	}
	return s.set(ctx, keySavedPosts, append(posts, post))
}

func (s *Store) RemovePost(ctx context.Context, postID string) error {
	posts, err := s.SavedPosts(ctx)
	if err != nil {
		return err
	}
	kept := lo.Filter(posts, func(p media.Post, _ int) bool { return p.ID != postID })
	return s.set(ctx, keySavedPosts, kept)
}

func (s *Store) FollowedSubs(ctx context.Context) ([]string, error) {
	return s.followed(ctx, keyFollowedSubs)
}

func (s *Store) FollowedUsers(ctx context.Context) ([]string, error) {
	return s.followed(ctx, keyFollowedUsers)
}

func (s *Store) FollowSub(ctx context.Context, name string) error {
	return s.follow(ctx, keyFollowedSubs, name)
}

func (s *Store) UnfollowSub(ctx context.Context, name string) error {
	return s.unfollow(ctx, keyFollowedSubs, name)
}

func (s *Store) FollowUser(ctx context.Context, name string) error {
	return s.follow(ctx, keyFollowedUsers, name)
}

func (s *Store) UnfollowUser(ctx context.Context, name string) error {
	return s.unfollow(ctx, keyFollowedUsers, name)
}

func (s *Store) followed(ctx context.Context, key string) ([]string, error) {
	var names []string
	if err := s.get(ctx, key, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) follow(ctx context.Context, key, name string) error {
	names, err := s.followed(ctx, key)
	if err != nil {
		return err
	}
	if lo.Contains(names, name) {
		return nil
	}
	return s.set(ctx, key, append(names, name))
}

func (s *Store) unfollow(ctx context.Context, key, name string) error {
	names, err := s.followed(ctx, key)
	if err != nil {
		return err
	}
	kept := lo.Filter(names, func(n string, _ int) bool { return n != name })
	return s.set(ctx, key, kept)
}
