package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/reddit"
	"github.com/glabrego/griddit/internal/storage"
)

type memStore struct {
	settings storage.Settings
	saved    []media.Post
	subs     []string
	users    []string
	err      error
}

func (m *memStore) GetSettings(context.Context) (storage.Settings, error) {
	return m.settings, m.err
}

func (m *memStore) SaveSettings(_ context.Context, settings storage.Settings) error {
	m.settings = settings
	return m.err
}

func (m *memStore) SavedPosts(context.Context) ([]media.Post, error) { return m.saved, m.err }

func (m *memStore) SavePost(_ context.Context, post media.Post) error {
	m.saved = append(m.saved, post)
	return m.err
}

func (m *memStore) RemovePost(_ context.Context, postID string) error {
	kept := m.saved[:0]
	for _, p := range m.saved {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	m.saved = kept
	return m.err
}

func (m *memStore) FollowedSubs(context.Context) ([]string, error)  { return m.subs, m.err }
func (m *memStore) FollowedUsers(context.Context) ([]string, error) { return m.users, m.err }

func (m *memStore) FollowSub(_ context.Context, name string) error {
	m.subs = append(m.subs, name)
	return m.err
}

func (m *memStore) UnfollowSub(_ context.Context, name string) error {
	kept := m.subs[:0]
	for _, s := range m.subs {
		if s != name {
			kept = append(kept, s)
		}
	}
	m.subs = kept
	return m.err
}

func (m *memStore) FollowUser(_ context.Context, name string) error {
	m.users = append(m.users, name)
	return m.err
}

func (m *memStore) UnfollowUser(_ context.Context, name string) error {
	kept := m.users[:0]
	for _, u := range m.users {
		if u != name {
			kept = append(kept, u)
		}
	}
	m.users = kept
	return m.err
}

func (m *memStore) Export(context.Context, io.Writer) error { return m.err }
func (m *memStore) Import(context.Context, io.Reader) error { return m.err }

type fakeDownloader struct {
	gotURL      string
	gotFilename string
	err         error
}

func (f *fakeDownloader) Save(_ context.Context, url, filename string) (string, error) {
	f.gotURL = url
	f.gotFilename = filename
	if f.err != nil {
		return "", f.err
	}
	return "/downloads/" + filename, nil
}

func TestFollowSource_DispatchesByKind(t *testing.T) {
	store := &memStore{}
	service := NewService(store, &fakeDownloader{})
	ctx := context.Background()

	if err := service.FollowSource(ctx, reddit.SubredditSource("pics")); err != nil {
		t.Fatalf("FollowSource(sub) returned error: %v", err)
	}
	if err := service.FollowSource(ctx, reddit.UserSource("someone")); err != nil {
		t.Fatalf("FollowSource(user) returned error: %v", err)
	}
	if len(store.subs) != 1 || store.subs[0] != "pics" {
		t.Fatalf("unexpected subs: %v", store.subs)
	}
	if len(store.users) != 1 || store.users[0] != "someone" {
		t.Fatalf("unexpected users: %v", store.users)
	}

	if err := service.FollowSource(ctx, reddit.Front()); err == nil {
		t.Fatal("expected error following the front page")
	}
}

func TestRecentSaved_Truncates(t *testing.T) {
	store := &memStore{}
	for i := 0; i < 15; i++ {
		store.saved = append(store.saved, media.Post{ID: fmt.Sprintf("p%d", i)})
	}
	service := NewService(store, &fakeDownloader{})

	posts, err := service.RecentSaved(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSaved returned error: %v", err)
	}
	if len(posts) != 10 {
		t.Fatalf("expected 10 posts, got %d", len(posts))
	}
	if posts[0].ID != "p0" {
		t.Fatalf("unexpected first post: %s", posts[0].ID)
	}
}

func TestDownload_BuildsFilename(t *testing.T) {
	dl := &fakeDownloader{}
	service := NewService(&memStore{}, dl)

	post := media.Post{
		ID:        "abc",
		Subreddit: "pics",
		Media: []media.Item{
			{Type: media.TypeImage, URL: "https://i.redd.it/abc0.jpg"},
			{Type: media.TypeImage, URL: "https://i.redd.it/abc1.jpg"},
		},
	}
	path, err := service.Download(context.Background(), post, 1)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if dl.gotFilename != "reddit_pics_abc_1" {
		t.Fatalf("unexpected filename: %s", dl.gotFilename)
	}
	if dl.gotURL != "https://i.redd.it/abc1.jpg" {
		t.Fatalf("unexpected url: %s", dl.gotURL)
	}
	if path != "/downloads/reddit_pics_abc_1" {
		t.Fatalf("unexpected path: %s", path)
	}
}

func TestDownload_IndexOutOfRange(t *testing.T) {
	service := NewService(&memStore{}, &fakeDownloader{})
	post := media.Post{ID: "abc", Media: []media.Item{{URL: "https://i.redd.it/a.jpg"}}}

	if _, err := service.Download(context.Background(), post, 1); err == nil {
		t.Fatal("expected error for out-of-range media index")
	}
	if _, err := service.Download(context.Background(), post, -1); err == nil {
		t.Fatal("expected error for negative media index")
	}
}

func TestServiceErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk failure")
	service := NewService(&memStore{err: boom}, &fakeDownloader{})

	if _, err := service.Settings(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if _, err := service.Followed(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
