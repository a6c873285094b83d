package reddit

// Post is the subset of listing fields the gallery reads. Everything that
// may be absent from a payload is a pointer or a map so a missing field
// decodes to nil instead of a zero struct that looks populated.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	Over18      bool    `json:"over_18"`
	IsSelf      bool    `json:"is_self"`
	PostHint    string  `json:"post_hint"`
	URL         string  `json:"url"`
	Thumbnail   string  `json:"thumbnail"`

	IsGallery     bool                     `json:"is_gallery"`
	GalleryData   *GalleryData             `json:"gallery_data"`
	MediaMetadata map[string]MediaMetadata `json:"media_metadata"`

	Media   *Media   `json:"media"`
	Preview *Preview `json:"preview"`
}

type GalleryData struct {
	Items []GalleryItem `json:"items"`
}

type GalleryItem struct {
	MediaID string `json:"media_id"`
	ID      int    `json:"id"`
}

// MediaMetadata describes one gallery entry. E is the encoding tag
// ("Image" or "AnimatedImage"), S the full-size source and P the preview
// resolutions, smallest first.
type MediaMetadata struct {
	E string           `json:"e"`
	M string           `json:"m"`
	S *MetadataSource  `json:"s"`
	P []MetadataSource `json:"p"`
}

type MetadataSource struct {
	X   int    `json:"x"`
	Y   int    `json:"y"`
	U   string `json:"u"`
	GIF string `json:"gif"`
	MP4 string `json:"mp4"`
}

type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
}

type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Duration    int    `json:"duration"`
	IsGif       bool   `json:"is_gif"`
}

type Preview struct {
	Images             []PreviewImage `json:"images"`
	RedditVideoPreview *RedditVideo   `json:"reddit_video_preview"`
}

type PreviewImage struct {
	Source      *PreviewSource  `json:"source"`
	Resolutions []PreviewSource `json:"resolutions"`
}

type PreviewSource struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Listing is the paginated envelope returned by the JSON endpoints.
type Listing struct {
	Kind string      `json:"kind"`
	Data ListingData `json:"data"`
}

type ListingData struct {
	After    string  `json:"after"`
	Children []Thing `json:"children"`
}

type Thing struct {
	Kind string `json:"kind"`
	Data Post   `json:"data"`
}
