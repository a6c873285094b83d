// Package media normalizes heterogeneous listing payloads into a flat,
// renderable media sequence. This is the only place that knows about the
// upstream post shapes: galleries, native and preview videos, directly
// linked files, and the sentinel thumbnail placeholders.
package media

import (
	"fmt"
	"html"
	"regexp"

	"github.com/glabrego/griddit/internal/reddit"
)

type Type string

const (
	TypeImage Type = "image"
	TypeGIF   Type = "gif"
	TypeVideo Type = "video"
)

// Item is one displayable media unit. URL is always non-empty for items
// produced here; Thumbnail falls back to URL when nothing better resolves.
type Item struct {
	Type      Type   `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// Post is the normalized form kept in memory and in the saved-posts store.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"numComments"`
	Created     float64 `json:"created"`
	Permalink   string  `json:"permalink"`
	NSFW        bool    `json:"nsfw"`
	Media       []Item  `json:"media"`
}

const permalinkBase = "https://www.reddit.com"

var (
	mediaFileRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|mp4|webm)(\?.*)?$`)
	videoFileRe = regexp.MustCompile(`(?i)\.(mp4|webm)(\?.*)?$`)
	gifFileRe   = regexp.MustCompile(`(?i)\.gif(\?.*)?$`)
)

// Sentinel thumbnail values the upstream uses for "no real thumbnail".
var sentinelThumbnails = map[string]bool{
	"default": true,
	"nsfw":    true,
	"spoiler": true,
}

// HasMedia reports whether a raw post carries displayable media. Self
// posts never do; otherwise any of the media-bearing signals accepts.
func HasMedia(p reddit.Post) bool {
	if p.IsSelf {
		return false
	}
	if p.PostHint == "image" || p.PostHint == "hosted:video" {
		return true
	}
	if p.IsGallery {
		return true
	}
	if p.URL != "" && mediaFileRe.MatchString(p.URL) {
		return true
	}
	if p.Preview != nil && len(p.Preview.Images) > 0 {
		return true
	}
	if p.Media != nil && p.Media.RedditVideo != nil {
		return true
	}
	return false
}

// ParsePost builds the normalized post. The branches are mutually
// exclusive and tried in priority order; when none matches the post is
// still returned with an empty media list, and views skip it. Extraction
// never fails: absent optional fields fall through to the next
// alternative.
func ParsePost(p reddit.Post) Post {
	var items []Item

	switch {
	case p.IsGallery && p.GalleryData != nil && p.MediaMetadata != nil:
		items = extractGallery(p)
	case p.Media != nil && p.Media.RedditVideo != nil:
		items = []Item{{
			Type:      TypeVideo,
			URL:       unescape(p.Media.RedditVideo.FallbackURL),
			Thumbnail: previewThumbnail(p),
		}}
	case p.Preview != nil && p.Preview.RedditVideoPreview != nil:
		items = []Item{{
			Type:      TypeVideo,
			URL:       unescape(p.Preview.RedditVideoPreview.FallbackURL),
			Thumbnail: previewThumbnail(p),
		}}
	case p.URL != "":
		items = []Item{extractDirect(p)}
	}

	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Subreddit:   p.Subreddit,
		Score:       p.Score,
		NumComments: p.NumComments,
		Created:     p.CreatedUTC,
		Permalink:   permalinkBase + p.Permalink,
		NSFW:        p.Over18,
		Media:       items,
	}
}

func extractGallery(p reddit.Post) []Item {
	items := make([]Item, 0, len(p.GalleryData.Items))
	for _, entry := range p.GalleryData.Items {
		meta, ok := p.MediaMetadata[entry.MediaID]
		if !ok {
			continue
		}

		var itemURL string
		if meta.S != nil && meta.S.U != "" {
			itemURL = unescape(meta.S.U)
		} else if meta.S != nil && meta.S.GIF != "" {
			itemURL = unescape(meta.S.GIF)
		} else {
			itemURL = fmt.Sprintf("https://i.redd.it/%s.jpg", entry.MediaID)
		}

		itemType := TypeImage
		if meta.E == "AnimatedImage" {
			itemType = TypeGIF
		}

		// The preview list is ordered smallest to largest.
		thumbnail := itemURL
		if n := len(meta.P); n > 0 && meta.P[n-1].U != "" {
			thumbnail = unescape(meta.P[n-1].U)
		}

		items = append(items, Item{Type: itemType, URL: itemURL, Thumbnail: thumbnail})
	}
	return items
}

func extractDirect(p reddit.Post) Item {
	itemURL := unescape(p.URL)

	itemType := TypeImage
	switch {
	case videoFileRe.MatchString(itemURL):
		itemType = TypeVideo
	case gifFileRe.MatchString(itemURL):
		itemType = TypeGIF
	}

	thumbnail := previewThumbnail(p)
	if thumbnail == "" {
		thumbnail = itemURL
	}
	return Item{Type: itemType, URL: itemURL, Thumbnail: thumbnail}
}

// previewThumbnail resolves the shared thumbnail rule: the first preview
// image's source, else the last (largest) of its resolutions, else the
// post's own thumbnail field unless it is a sentinel placeholder.
func previewThumbnail(p reddit.Post) string {
	if p.Preview != nil && len(p.Preview.Images) > 0 {
		img := p.Preview.Images[0]
		if img.Source != nil && img.Source.URL != "" {
			return unescape(img.Source.URL)
		}
		if n := len(img.Resolutions); n > 0 && img.Resolutions[n-1].URL != "" {
			return unescape(img.Resolutions[n-1].URL)
		}
	}
	if p.Thumbnail != "" && !sentinelThumbnails[p.Thumbnail] {
		return unescape(p.Thumbnail)
	}
	return ""
}

// The upstream HTML-escapes every URL it serves.
func unescape(raw string) string {
	return html.UnescapeString(raw)
}
