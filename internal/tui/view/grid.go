package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/storage"
	tuitheme "github.com/glabrego/griddit/internal/tui/theme"
)

type CardParams struct {
	Post     media.Post
	Active   bool
	Width    int
	Rows     int
	ShowNSFW bool
	Now      time.Time
}

// CardRows converts the aspect-ratio preference into interior card
// height for a given card width. Terminal cells are roughly twice as
// tall as wide, so square cards use half the width.
func CardRows(aspect string, width int) int {
	var rows int
	switch aspect {
	case storage.AspectPortrait:
		rows = (width * 2) / 3
	case storage.AspectLandscape:
		rows = width / 3
	default:
		// square and auto
		rows = width / 2
	}
	if rows < 4 {
		rows = 4
	}
	return rows
}

// RenderCard draws one grid cell: badges on top, the title in the
// middle, subreddit and score at the bottom. NSFW posts render masked
// until the preference allows them.
func RenderCard(p CardParams, th tuitheme.Theme) string {
	interior := p.Width - 2
	if interior < 4 {
		interior = 4
	}
	rows := p.Rows
	if rows < 4 {
		rows = 4
	}

	lines := make([]string, 0, rows)
	lines = append(lines, cardBadgeLine(p.Post, interior, th))

	if p.Post.NSFW && !p.ShowNSFW {
		mask := th.NSFWMask.Render(truncateRunes("NSFW - press x to reveal", interior))
		lines = append(lines, padLine(mask, interior))
	} else {
		title := truncateRunes(strings.TrimSpace(p.Post.Title), interior)
		if title == "" {
			title = "(untitled)"
		}
		lines = append(lines, padLine(th.CardTitle.Render(title), interior))
	}

	for len(lines) < rows-1 {
		lines = append(lines, strings.Repeat(" ", interior))
	}

	meta := fmt.Sprintf("r/%s • %s • %s",
		p.Post.Subreddit, FormatScore(p.Post.Score), RelativeTimeLabel(p.Now, p.Post.Created))
	lines = append(lines, padLine(th.MetaValue.Render(truncateRunes(meta, interior)), interior))

	return th.CardBorder(p.Active).Render(strings.Join(lines[:rows], "\n"))
}

func cardBadgeLine(post media.Post, width int, th tuitheme.Theme) string {
	parts := make([]string, 0, 3)
	if len(post.Media) > 0 {
		if badge := th.StyleBadge(post.Media[0]); badge != "" {
			parts = append(parts, badge)
		}
	}
	if len(post.Media) > 1 {
		parts = append(parts, th.BadgeGallery.Render(fmt.Sprintf("▣ %d", len(post.Media))))
	}
	if post.NSFW {
		parts = append(parts, th.BadgeNSFW.Render("NSFW"))
	}
	return padLine(strings.Join(parts, " "), width)
}

func padLine(s string, width int) string {
	gap := width - visibleLen(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

type GridParams struct {
	Posts    []media.Post
	Cursor   int
	Columns  int
	Width    int
	StartRow int
	EndRow   int
	Aspect   string
	ShowNSFW bool
	Now      time.Time
}

// RenderGrid lays the posts out in Columns-wide rows, rendering only
// the [StartRow, EndRow) window.
func RenderGrid(p GridParams, th tuitheme.Theme) string {
	if len(p.Posts) == 0 || p.Columns < 1 {
		return ""
	}
	cardWidth := p.Width/p.Columns - 2
	if cardWidth < 8 {
		cardWidth = 8
	}
	rows := CardRows(p.Aspect, cardWidth)

	var b strings.Builder
	for row := p.StartRow; row < p.EndRow; row++ {
		cards := make([]string, 0, p.Columns)
		for col := 0; col < p.Columns; col++ {
			i := row*p.Columns + col
			if i >= len(p.Posts) {
				break
			}
			cards = append(cards, RenderCard(CardParams{
				Post:     p.Posts[i],
				Active:   i == p.Cursor,
				Width:    cardWidth,
				Rows:     rows,
				ShowNSFW: p.ShowNSFW,
				Now:      p.Now,
			}, th))
		}
		if len(cards) == 0 {
			break
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		b.WriteString("\n")
	}
	return b.String()
}
