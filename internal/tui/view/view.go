package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// RelativeTimeLabel formats a post's creation time (unix seconds) the
// way the grid shows it: "3 hours ago", "2 days ago".
func RelativeTimeLabel(now time.Time, createdUTC float64) string {
	if now.IsZero() {
		now = time.Now()
	}
	if createdUTC <= 0 {
		return "unknown"
	}
	then := time.Unix(int64(createdUTC), 0)
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

// FormatScore compacts vote counts the way Reddit does: 999 stays as
// is, 12345 becomes "12.3k".
func FormatScore(score int) string {
	if score < 1000 && score > -1000 {
		return fmt.Sprintf("%d", score)
	}
	return fmt.Sprintf("%.1fk", float64(score)/1000)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
