package state

import (
	"testing"

	"github.com/glabrego/griddit/internal/media"
)

func postsWithMediaCounts(counts ...int) []media.Post {
	posts := make([]media.Post, len(counts))
	for i, count := range counts {
		items := make([]media.Item, count)
		for j := range items {
			items[j] = media.Item{Type: media.TypeImage, URL: "https://i.redd.it/x.jpg", Thumbnail: "https://i.redd.it/x.jpg"}
		}
		posts[i].Media = items
	}
	return posts
}

func TestClampIndex(t *testing.T) {
	if got := ClampIndex(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampIndex(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampIndex(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampIndex(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty size, got %d", got)
	}
}

func TestMoveGridCursor(t *testing.T) {
	if got := MoveGridCursor(0, 1, 10); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := MoveGridCursor(3, 4, 10); got != 7 {
		t.Fatalf("vertical move expected 7, got %d", got)
	}
	if got := MoveGridCursor(0, -1, 10); got != 0 {
		t.Fatalf("left edge should hold, got %d", got)
	}
	if got := MoveGridCursor(8, 4, 10); got != 8 {
		t.Fatalf("move past the end should hold, got %d", got)
	}
	if got := MoveGridCursor(4, 1, 0); got != 0 {
		t.Fatalf("empty grid should pin to 0, got %d", got)
	}
}

func TestNearEnd(t *testing.T) {
	if NearEnd(0, 50, 4) {
		t.Fatal("cursor at the top should not trigger loading")
	}
	if !NearEnd(43, 50, 4) {
		t.Fatal("cursor in the second-to-last row should trigger loading")
	}
	if !NearEnd(0, 0, 4) {
		t.Fatal("empty grid should always want more")
	}
}

func TestGridWindow(t *testing.T) {
	start, end := GridWindow(10, 0, 4)
	if start != 0 || end != 4 {
		t.Fatalf("unexpected window: %d..%d", start, end)
	}
	start, end = GridWindow(10, 9, 4)
	if start != 6 || end != 10 {
		t.Fatalf("unexpected bottom window: %d..%d", start, end)
	}
	start, end = GridWindow(3, 1, 10)
	if start != 0 || end != 3 {
		t.Fatalf("short grid should render fully: %d..%d", start, end)
	}
}

func TestNextMedia_WalksThroughPostsAndItems(t *testing.T) {
	posts := postsWithMediaCounts(1, 2, 1)
	pos := LightboxPos{Post: 0, Media: 0}

	want := []LightboxPos{
		{Post: 1, Media: 0},
		{Post: 1, Media: 1},
		{Post: 2, Media: 0},
	}
	for i, expected := range want {
		pos = NextMedia(pos, posts)
		if pos != expected {
			t.Fatalf("step %d: got %+v, want %+v", i+1, pos, expected)
		}
	}

	// Boundary: very last item holds.
	if got := NextMedia(pos, posts); got != pos {
		t.Fatalf("expected no-op at the last item, got %+v", got)
	}
}

func TestPrevMedia_WrapsToPreviousPostsLastItem(t *testing.T) {
	posts := postsWithMediaCounts(1, 3, 1)

	pos := PrevMedia(LightboxPos{Post: 2, Media: 0}, posts)
	if (pos != LightboxPos{Post: 1, Media: 2}) {
		t.Fatalf("expected wrap to previous post's last item, got %+v", pos)
	}

	pos = PrevMedia(pos, posts)
	if (pos != LightboxPos{Post: 1, Media: 1}) {
		t.Fatalf("expected move within post, got %+v", pos)
	}

	// Boundary: very first item holds.
	pos = LightboxPos{Post: 0, Media: 0}
	if got := PrevMedia(pos, posts); got != pos {
		t.Fatalf("expected no-op at the first item, got %+v", got)
	}
}

func TestPrevMedia_ToleratesEmptyMediaPost(t *testing.T) {
	posts := postsWithMediaCounts(0, 1)
	pos := PrevMedia(LightboxPos{Post: 1, Media: 0}, posts)
	if (pos != LightboxPos{Post: 0, Media: 0}) {
		t.Fatalf("empty-media neighbor should clamp to 0, got %+v", pos)
	}
}

func TestJumpMedia(t *testing.T) {
	posts := postsWithMediaCounts(3)
	pos := JumpMedia(LightboxPos{Post: 0, Media: 0}, posts, 2)
	if pos.Media != 2 {
		t.Fatalf("expected jump to 2, got %+v", pos)
	}
	if got := JumpMedia(pos, posts, 5); got != pos {
		t.Fatalf("out-of-range jump should hold, got %+v", got)
	}
}
