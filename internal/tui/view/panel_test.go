package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/storage"
	tuitheme "github.com/glabrego/griddit/internal/tui/theme"
)

func TestRenderPanel(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := tuitheme.Dark()

	saved := galleryPost()
	got := stripANSI(RenderPanel(PanelParams{
		Subs:     []string{"pics", "earthporn"},
		Users:    []string{"shutterbug"},
		Saved:    []media.Post{saved},
		Settings: storage.Settings{Columns: 3, AspectRatio: storage.AspectPortrait, Theme: storage.ThemeLight, ShowNSFW: true},
		Width:    80,
		Now:      testNow(),
	}, th))

	for _, want := range []string{
		"Followed subreddits",
		"> r/pics",
		"  r/earthporn",
		"Followed users",
		"  u/shutterbug",
		"Saved posts",
		"Sunset over the bay",
		"columns 3",
		"aspect portrait",
		"theme light",
		"show NSFW on",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in panel:\n%s", want, got)
		}
	}
}

func TestRenderPanel_Empty(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := tuitheme.Dark()

	got := stripANSI(RenderPanel(PanelParams{Settings: storage.DefaultSettings(), Width: 80, Now: testNow()}, th))
	if strings.Count(got, "(none)") != 3 {
		t.Fatalf("empty panel should mark all three lists empty:\n%s", got)
	}
}

func TestRenderPanel_CursorCrossesSections(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := tuitheme.Dark()

	// Cursor 2 lands on the first user: subs take rows 0-1.
	got := stripANSI(RenderPanel(PanelParams{
		Subs:     []string{"pics", "earthporn"},
		Users:    []string{"shutterbug"},
		Settings: storage.DefaultSettings(),
		Cursor:   2,
		Width:    80,
		Now:      testNow(),
	}, th))
	if !strings.Contains(got, "> u/shutterbug") {
		t.Fatalf("expected cursor on the first user:\n%s", got)
	}
	if strings.Contains(got, "> r/") {
		t.Fatalf("no subreddit row should carry the cursor:\n%s", got)
	}
}
