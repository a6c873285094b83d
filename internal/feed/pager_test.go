package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glabrego/griddit/internal/reddit"
)

type fakeLister struct {
	pages []fakePage
	calls int
	gotAfter []string
}

type fakePage struct {
	posts []reddit.Post
	after string
	err   error
}

func (f *fakeLister) Listing(_ context.Context, _ reddit.Source, _ string, after string) ([]reddit.Post, string, error) {
	f.gotAfter = append(f.gotAfter, after)
	if f.calls >= len(f.pages) {
		return nil, "", errors.New("no more scripted pages")
	}
	page := f.pages[f.calls]
	f.calls++
	if page.err != nil {
		return nil, "", page.err
	}
	return page.posts, page.after, nil
}

func imagePosts(prefix string, n int) []reddit.Post {
	posts := make([]reddit.Post, n)
	for i := range posts {
		posts[i] = reddit.Post{
			ID:       fmt.Sprintf("%s%d", prefix, i),
			PostHint: "image",
			URL:      fmt.Sprintf("https://i.redd.it/%s%d.jpg", prefix, i),
		}
	}
	return posts
}

func TestPager_AccumulatesUntilCursorExhausted(t *testing.T) {
	client := &fakeLister{pages: []fakePage{
		{posts: imagePosts("a", 20), after: "t3_page2"},
		{posts: imagePosts("b", 15), after: "t3_page3"},
		{posts: nil, after: ""},
	}}
	p := NewPager(client, reddit.Front(), reddit.SortHot)

	for i := 0; i < 3; i++ {
		if !p.HasMore() {
			t.Fatalf("pagination stopped early before call %d", i+1)
		}
		if _, err := p.Fetch(context.Background()); err != nil {
			t.Fatalf("fetch %d returned error: %v", i+1, err)
		}
	}

	if got := len(p.Posts()); got != 35 {
		t.Fatalf("expected 35 accumulated posts, got %d", got)
	}
	if p.HasMore() {
		t.Fatal("empty cursor should end pagination")
	}

	// A further fetch must not hit the upstream again.
	if _, err := p.Fetch(context.Background()); err != nil {
		t.Fatalf("post-exhaustion fetch returned error: %v", err)
	}
	if client.calls != 3 {
		t.Fatalf("expected exactly 3 upstream calls, got %d", client.calls)
	}

	wantCursors := []string{"", "t3_page2", "t3_page3"}
	for i, want := range wantCursors {
		if client.gotAfter[i] != want {
			t.Fatalf("call %d used cursor %q, want %q", i+1, client.gotAfter[i], want)
		}
	}
}

func TestPager_AppendsInUpstreamOrder(t *testing.T) {
	client := &fakeLister{pages: []fakePage{
		{posts: imagePosts("a", 3), after: "next"},
		{posts: imagePosts("b", 2), after: ""},
	}}
	p := NewPager(client, reddit.SubredditSource("pics"), reddit.SortNew)

	_, _ = p.Fetch(context.Background())
	_, _ = p.Fetch(context.Background())

	want := []string{"a0", "a1", "a2", "b0", "b1"}
	posts := p.Posts()
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(posts))
	}
	for i, id := range want {
		if posts[i].ID != id {
			t.Fatalf("post %d has id %s, want %s", i, posts[i].ID, id)
		}
	}
}

func TestPager_FiltersNonMediaPosts(t *testing.T) {
	client := &fakeLister{pages: []fakePage{{
		posts: []reddit.Post{
			{ID: "media", PostHint: "image", URL: "https://i.redd.it/m.jpg"},
			{ID: "selftext", IsSelf: true},
			{ID: "link", URL: "https://example.com/article"},
		},
		after: "",
	}}}
	p := NewPager(client, reddit.Front(), reddit.SortHot)

	appended, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch returned error: %v", err)
	}
	if appended != 1 {
		t.Fatalf("expected 1 appended post, got %d", appended)
	}
	if len(p.Posts()) != 1 || p.Posts()[0].ID != "media" {
		t.Fatalf("unexpected accumulated posts: %+v", p.Posts())
	}
}

func TestPager_ErrorLeavesCursorAndPosts(t *testing.T) {
	client := &fakeLister{pages: []fakePage{
		{posts: imagePosts("a", 2), after: "t3_next"},
		{err: errors.New("network down")},
		{posts: imagePosts("b", 1), after: ""},
	}}
	p := NewPager(client, reddit.Front(), reddit.SortHot)

	_, _ = p.Fetch(context.Background())
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	if got := len(p.Posts()); got != 2 {
		t.Fatalf("failed fetch must not change posts, got %d", got)
	}
	if !p.HasMore() {
		t.Fatal("failed fetch must not consume the cursor")
	}

	// Retry succeeds against the same cursor.
	if _, err := p.Fetch(context.Background()); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if client.gotAfter[2] != "t3_next" {
		t.Fatalf("retry used cursor %q, want t3_next", client.gotAfter[2])
	}
	if got := len(p.Posts()); got != 3 {
		t.Fatalf("expected 3 posts after retry, got %d", got)
	}
}

// reentrantLister drives a second Fetch while the first is still in
// flight, which must be dropped rather than queued.
type reentrantLister struct {
	pager    *Pager
	reentered bool
}

func (r *reentrantLister) Listing(ctx context.Context, _ reddit.Source, _ string, _ string) ([]reddit.Post, string, error) {
	if !r.reentered {
		r.reentered = true
		appended, err := r.pager.Fetch(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("reentrant fetch errored: %w", err)
		}
		if appended != 0 {
			return nil, "", errors.New("reentrant fetch was not dropped")
		}
	}
	return imagePosts("a", 1), "", nil
}

func TestPager_FetchWhileLoadingIsDropped(t *testing.T) {
	client := &reentrantLister{}
	p := NewPager(client, reddit.Front(), reddit.SortHot)
	client.pager = p

	appended, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch returned error: %v", err)
	}
	if appended != 1 {
		t.Fatalf("expected 1 appended post, got %d", appended)
	}
	if !client.reentered {
		t.Fatal("test did not exercise the in-flight guard")
	}
}

func TestPager_ResetReArmsPagination(t *testing.T) {
	client := &fakeLister{pages: []fakePage{
		{posts: imagePosts("a", 2), after: ""},
		{posts: imagePosts("b", 1), after: ""},
	}}
	p := NewPager(client, reddit.Front(), reddit.SortHot)

	_, _ = p.Fetch(context.Background())
	if p.HasMore() {
		t.Fatal("feed should be exhausted")
	}

	p.Reset(reddit.SubredditSource("aww"), reddit.SortTop)
	if !p.HasMore() {
		t.Fatal("reset should re-arm pagination")
	}
	if len(p.Posts()) != 0 {
		t.Fatal("reset should clear accumulated posts")
	}

	_, _ = p.Fetch(context.Background())
	if len(p.Posts()) != 1 || p.Posts()[0].ID != "b0" {
		t.Fatalf("unexpected posts after reset: %+v", p.Posts())
	}
	if p.Sort() != reddit.SortTop || p.Source().Name != "aww" {
		t.Fatalf("reset did not update source/sort: %+v %s", p.Source(), p.Sort())
	}
}
