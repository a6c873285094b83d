// Package state holds the pure grid and lightbox navigation math so the
// transition rules are testable without a terminal.
package state

import "github.com/glabrego/griddit/internal/media"

func ClampIndex(index, size int) int {
	if size <= 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

// MoveGridCursor moves by delta cards inside a columns-wide grid,
// clamping at both ends. Horizontal moves use delta ±1, vertical moves
// ±columns.
func MoveGridCursor(cursor, delta, total int) int {
	if total <= 0 {
		return 0
	}
	next := cursor + delta
	if next < 0 || next >= total {
		return ClampIndex(cursor, total)
	}
	return next
}

// NearEnd reports whether the cursor sits in the last two grid rows, the
// point where another page should start loading.
func NearEnd(cursor, total, columns int) bool {
	if total <= 0 {
		return true
	}
	if columns < 1 {
		columns = 1
	}
	return cursor >= total-2*columns
}

// GridWindow returns the [start, end) row range to render so the cursor
// row stays visible inside height rows.
func GridWindow(totalRows, cursorRow, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursorRow = ClampIndex(cursorRow, totalRows)
	start := cursorRow - height/2
	if start < 0 {
		start = 0
	}
	if maxStart := totalRows - height; start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// LightboxPos addresses one media item: a post in the accumulated list
// and a sub-item inside that post's media sequence.
type LightboxPos struct {
	Post  int
	Media int
}

// NextMedia advances right: through the current post's media first, then
// to the next post's first item. At the very last item it stays put.
func NextMedia(pos LightboxPos, posts []media.Post) LightboxPos {
	if pos.Post < 0 || pos.Post >= len(posts) {
		return pos
	}
	if pos.Media < len(posts[pos.Post].Media)-1 {
		pos.Media++
		return pos
	}
	if pos.Post < len(posts)-1 {
		pos.Post++
		pos.Media = 0
	}
	return pos
}

// PrevMedia moves left: through the current post's media first, then to
// the previous post's last item. At the very first item it stays put.
func PrevMedia(pos LightboxPos, posts []media.Post) LightboxPos {
	if pos.Post < 0 || pos.Post >= len(posts) {
		return pos
	}
	if pos.Media > 0 {
		pos.Media--
		return pos
	}
	if pos.Post > 0 {
		pos.Post--
		pos.Media = ClampIndex(len(posts[pos.Post].Media)-1, len(posts[pos.Post].Media))
	}
	return pos
}

// JumpMedia selects a media sub-item directly, as the dot indicator
// does. Out-of-range targets leave the position unchanged.
func JumpMedia(pos LightboxPos, posts []media.Post, target int) LightboxPos {
	if pos.Post < 0 || pos.Post >= len(posts) {
		return pos
	}
	if target < 0 || target >= len(posts[pos.Post].Media) {
		return pos
	}
	pos.Media = target
	return pos
}
