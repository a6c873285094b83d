package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/storage"
	tuitheme "github.com/glabrego/griddit/internal/tui/theme"
)

type PanelParams struct {
	Subs     []string
	Users    []string
	Saved    []media.Post
	Settings storage.Settings
	Cursor   int
	Width    int
	Now      time.Time
}

// RenderPanel draws the management view: followed subreddits and users,
// the most recently saved posts, and the current settings. Cursor
// addresses the concatenation subs+users+saved, matching the model's
// panel item order.
func RenderPanel(p PanelParams, th tuitheme.Theme) string {
	width := p.Width
	if width < 20 {
		width = 20
	}

	lines := make([]string, 0, 32)
	row := 0
	marker := func() string {
		mark := "  "
		if row == p.Cursor {
			mark = "> "
		}
		row++
		return mark
	}

	lines = append(lines, th.Section.Render("Followed subreddits"))
	if len(p.Subs) == 0 {
		lines = append(lines, th.MetaValue.Render("  (none)"))
	}
	for _, sub := range p.Subs {
		lines = append(lines, fmt.Sprintf("%sr/%s", marker(), sub))
	}

	lines = append(lines, "")
	lines = append(lines, th.Section.Render("Followed users"))
	if len(p.Users) == 0 {
		lines = append(lines, th.MetaValue.Render("  (none)"))
	}
	for _, user := range p.Users {
		lines = append(lines, fmt.Sprintf("%su/%s", marker(), user))
	}

	lines = append(lines, "")
	lines = append(lines, th.Section.Render("Saved posts"))
	if len(p.Saved) == 0 {
		lines = append(lines, th.MetaValue.Render("  (none)"))
	}
	for _, post := range p.Saved {
		title := truncateRunes(strings.TrimSpace(post.Title), width-24)
		entry := fmt.Sprintf("%s%s  %s", marker(), title,
			th.MetaValue.Render(fmt.Sprintf("r/%s • %s", post.Subreddit, RelativeTimeLabel(p.Now, post.Created))))
		lines = append(lines, entry)
	}

	lines = append(lines, "")
	lines = append(lines, th.Section.Render("Settings"))
	lines = append(lines, settingLine("columns", fmt.Sprintf("%d", p.Settings.Columns), th))
	lines = append(lines, settingLine("aspect", p.Settings.AspectRatio, th))
	lines = append(lines, settingLine("theme", p.Settings.Theme, th))
	lines = append(lines, settingLine("show NSFW", onOff(p.Settings.ShowNSFW), th))

	return strings.Join(lines, "\n")
}

func settingLine(label, value string, th tuitheme.Theme) string {
	return "  " + th.MetaLabel.Render(label) + " " + th.MetaValue.Render(value)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
