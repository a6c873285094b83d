// Package app exposes the persisted-state and download actions behind
// small capability interfaces, so the UI never touches sqlite or the
// filesystem directly and tests can substitute in-memory fakes.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/reddit"
	"github.com/glabrego/griddit/internal/storage"
)

type Store interface {
	GetSettings(ctx context.Context) (storage.Settings, error)
	SaveSettings(ctx context.Context, settings storage.Settings) error

	SavedPosts(ctx context.Context) ([]media.Post, error)
	SavePost(ctx context.Context, post media.Post) error
	RemovePost(ctx context.Context, postID string) error

	FollowedSubs(ctx context.Context) ([]string, error)
	FollowedUsers(ctx context.Context) ([]string, error)
	FollowSub(ctx context.Context, name string) error
	UnfollowSub(ctx context.Context, name string) error
	FollowUser(ctx context.Context, name string) error
	UnfollowUser(ctx context.Context, name string) error

	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
}

type Downloader interface {
	Save(ctx context.Context, url, filename string) (string, error)
}

// Followed pairs the two follow lists the way the panel consumes them.
type Followed struct {
	Subs  []string
	Users []string
}

type Service struct {
	store      Store
	downloader Downloader
}

func NewService(store Store, downloader Downloader) *Service {
	return &Service{store: store, downloader: downloader}
}

func (s *Service) Settings(ctx context.Context) (storage.Settings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return storage.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *Service) SaveSettings(ctx context.Context, settings storage.Settings) error {
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

func (s *Service) SavedPosts(ctx context.Context) ([]media.Post, error) {
	posts, err := s.store.SavedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load saved posts: %w", err)
	}
	return posts, nil
}

// RecentSaved returns at most limit saved posts, newest saves last in
// store order, for the truncated panel listing.
func (s *Service) RecentSaved(ctx context.Context, limit int) ([]media.Post, error) {
	posts, err := s.SavedPosts(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *Service) SavePost(ctx context.Context, post media.Post) error {
	if err := s.store.SavePost(ctx, post); err != nil {
		return fmt.Errorf("save post %s: %w", post.ID, err)
	}
	return nil
}

func (s *Service) RemovePost(ctx context.Context, postID string) error {
	if err := s.store.RemovePost(ctx, postID); err != nil {
		return fmt.Errorf("remove post %s: %w", postID, err)
	}
	return nil
}

func (s *Service) Followed(ctx context.Context) (Followed, error) {
	subs, err := s.store.FollowedSubs(ctx)
	if err != nil {
		return Followed{}, fmt.Errorf("load followed subs: %w", err)
	}
	users, err := s.store.FollowedUsers(ctx)
	if err != nil {
		return Followed{}, fmt.Errorf("load followed users: %w", err)
	}
	return Followed{Subs: subs, Users: users}, nil
}

// FollowSource follows whatever the source points at. Following the
// front page is meaningless and reports an error to surface in the UI.
func (s *Service) FollowSource(ctx context.Context, source reddit.Source) error {
	switch source.Kind {
	case reddit.SubredditFeed:
		if err := s.store.FollowSub(ctx, source.Name); err != nil {
			return fmt.Errorf("follow r/%s: %w", source.Name, err)
		}
		return nil
	case reddit.UserFeed:
		if err := s.store.FollowUser(ctx, source.Name); err != nil {
			return fmt.Errorf("follow u/%s: %w", source.Name, err)
		}
		return nil
	default:
		return fmt.Errorf("nothing to follow on the front page")
	}
}

func (s *Service) UnfollowSub(ctx context.Context, name string) error {
	if err := s.store.UnfollowSub(ctx, name); err != nil {
		return fmt.Errorf("unfollow r/%s: %w", name, err)
	}
	return nil
}

func (s *Service) UnfollowUser(ctx context.Context, name string) error {
	if err := s.store.UnfollowUser(ctx, name); err != nil {
		return fmt.Errorf("unfollow u/%s: %w", name, err)
	}
	return nil
}

// Download fetches one media item to local storage, named the way the
// lightbox does: reddit_<subreddit>_<postID>_<mediaIndex>.
func (s *Service) Download(ctx context.Context, post media.Post, mediaIndex int) (string, error) {
	if mediaIndex < 0 || mediaIndex >= len(post.Media) {
		return "", fmt.Errorf("post %s has no media item %d", post.ID, mediaIndex)
	}
	filename := fmt.Sprintf("reddit_%s_%s_%d", post.Subreddit, post.ID, mediaIndex)
	path, err := s.downloader.Save(ctx, post.Media[mediaIndex].URL, filename)
	if err != nil {
		return "", fmt.Errorf("download post %s media %d: %w", post.ID, mediaIndex, err)
	}
	return path, nil
}

func (s *Service) ExportBackup(ctx context.Context, w io.Writer) error {
	if err := s.store.Export(ctx, w); err != nil {
		return fmt.Errorf("export backup: %w", err)
	}
	return nil
}

func (s *Service) ImportBackup(ctx context.Context, r io.Reader) error {
	if err := s.store.Import(ctx, r); err != nil {
		return fmt.Errorf("import backup: %w", err)
	}
	return nil
}
