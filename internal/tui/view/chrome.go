package view

import (
	"fmt"

	tuitheme "github.com/glabrego/griddit/internal/tui/theme"
)

func Toolbar(mode string) string {
	switch mode {
	case "lightbox":
		return "h/l prev/next | 1-9 jump | s save | d download | o open | y copy | f follow | esc back | q quit"
	case "panel":
		return "j/k move | enter go to | x remove | esc back | q quit"
	case "search":
		return "type target (r/name, u/name, name) | enter go | esc cancel"
	default:
		return "h/j/k/l move | enter view | / go to | 1-4 sort | f follow | s save | d download | p panel | c/a/t/x settings | r refresh | q quit"
	}
}

// Header shows where the feed is pointed and how it is sorted.
func Header(targetLabel, sort string, th tuitheme.Theme) string {
	return th.Title.Render("griddit") + " " +
		th.ModePill.Render(targetLabel) + " " +
		th.MetaLabel.Render("sort") + " " + th.MetaValue.Render(sort)
}

// StatusLine reports fetch state and the post count, plus any transient
// status or warning message.
func StatusLine(loading, hasWarning bool, status, warning string, shown int, hasMore bool, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	if loading {
		state = "loading"
		stateLabel = th.StateLoad.Render("state")
	}
	if hasWarning {
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	}

	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}

	count := fmt.Sprintf("%d posts", shown)
	if !hasMore {
		count += " (end)"
	}
	return fmt.Sprintf("%s: %s | %s | %s", stateLabel, state, th.MetaValue.Render(count), th.MetaValue.Render(main))
}

// SearchPrompt renders the target input line while searching.
func SearchPrompt(buffer string, th tuitheme.Theme) string {
	return th.MetaLabel.Render("go to") + " " + th.MetaValue.Render(buffer) + th.Title.Render("▌")
}
