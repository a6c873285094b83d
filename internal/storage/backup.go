package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/glabrego/griddit/internal/media"
)

// Backup is the whole persisted namespace as one document, the format the
// export/import surface exchanges.
type Backup struct {
	Settings      Settings     `json:"settings"`
	SavedPosts    []media.Post `json:"savedPosts"`
	FollowedSubs  []string     `json:"followedSubs"`
	FollowedUsers []string     `json:"followedUsers"`
}

// Export serializes the entire store to w. Field order is fixed, so
// exporting an imported backup reproduces it byte for byte.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	var backup Backup
	var err error

	if backup.Settings, err = s.GetSettings(ctx); err != nil {
		return fmt.Errorf("export settings: %w", err)
	}
	if backup.SavedPosts, err = s.SavedPosts(ctx); err != nil {
		return fmt.Errorf("export saved posts: %w", err)
	}
	if backup.FollowedSubs, err = s.FollowedSubs(ctx); err != nil {
		return fmt.Errorf("export followed subs: %w", err)
	}
	if backup.FollowedUsers, err = s.FollowedUsers(ctx); err != nil {
		return fmt.Errorf("export followed users: %w", err)
	}

	encoded, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Import overwrites the whole namespace from a backup document, key by
// key, last write wins. A parse failure leaves the store untouched.
func (s *Store) Import(ctx context.Context, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	var backup Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("parse backup: %w", err)
	}

	if err := s.set(ctx, keySettings, backup.Settings.Normalize()); err != nil {
		return err
	}
	if err := s.set(ctx, keySavedPosts, backup.SavedPosts); err != nil {
		return err
	}
	if err := s.set(ctx, keyFollowedSubs, backup.FollowedSubs); err != nil {
		return err
	}
	return s.set(ctx, keyFollowedUsers, backup.FollowedUsers)
}
