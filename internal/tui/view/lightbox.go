package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/griddit/internal/media"
	tuitheme "github.com/glabrego/griddit/internal/tui/theme"
)

type LightboxParams struct {
	Post       media.Post
	MediaIndex int
	Width      int
	Saved      bool
	Now        time.Time
}

// RenderLightbox draws the single-post view: title, the focused media
// item's URL and type, gallery dots, and the post metadata block.
func RenderLightbox(p LightboxParams, th tuitheme.Theme) string {
	width := p.Width
	if width < 20 {
		width = 20
	}

	lines := make([]string, 0, 12)
	lines = append(lines, th.Title.Render(truncateRunes(strings.TrimSpace(p.Post.Title), width)))
	lines = append(lines, "")

	if len(p.Post.Media) == 0 {
		lines = append(lines, th.MetaValue.Render("(no media)"))
	} else {
		idx := p.MediaIndex
		if idx < 0 || idx >= len(p.Post.Media) {
			idx = 0
		}
		item := p.Post.Media[idx]
		if badge := th.StyleBadge(item); badge != "" {
			lines = append(lines, badge)
		}
		lines = append(lines, th.MetaValue.Render(truncateRunes(item.URL, width)))
		if len(p.Post.Media) > 1 {
			lines = append(lines, "")
			lines = append(lines, RenderDots(len(p.Post.Media), idx, th))
		}
	}

	lines = append(lines, "")
	meta := []string{
		th.MetaLabel.Render("r/") + th.MetaValue.Render(p.Post.Subreddit),
		th.MetaLabel.Render("u/") + th.MetaValue.Render(p.Post.Author),
		th.MetaLabel.Render("score") + " " + th.MetaValue.Render(FormatScore(p.Post.Score)),
		th.MetaLabel.Render("comments") + " " + th.MetaValue.Render(fmt.Sprintf("%d", p.Post.NumComments)),
		th.MetaLabel.Render("posted") + " " + th.MetaValue.Render(RelativeTimeLabel(p.Now, p.Post.Created)),
	}
	if p.Post.NSFW {
		meta = append(meta, th.BadgeNSFW.Render("NSFW"))
	}
	if p.Saved {
		meta = append(meta, th.StateIdle.Render("saved"))
	}
	lines = append(lines, strings.Join(meta, " • "))
	lines = append(lines, th.MetaValue.Render(truncateRunes(p.Post.Permalink, width)))

	return strings.Join(lines, "\n")
}

// RenderDots draws the gallery position indicator, one dot per media
// item with the active one highlighted.
func RenderDots(count, active int, th tuitheme.Theme) string {
	dots := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if i == active {
			dots = append(dots, th.DotActive.Render("●"))
		} else {
			dots = append(dots, th.DotIdle.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}
