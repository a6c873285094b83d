package reddit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const listingLimit = 50

const defaultUserAgent = "griddit/1.0 (terminal media grid)"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		http:      httpClient,
	}
}

// Listing fetches one page of a feed. after is the opaque cursor from the
// previous page, empty for the first page. It returns the page's posts in
// upstream order and the next cursor, empty when the feed is exhausted.
func (c *Client) Listing(ctx context.Context, source Source, sort, after string) ([]Post, string, error) {
	q := make(url.Values)
	q.Set("limit", fmt.Sprint(listingLimit))
	if source.Kind == UserFeed {
		q.Set("sort", sort)
	}
	if after != "" {
		q.Set("after", after)
	}

	fullURL := c.baseURL + source.Path(sort) + ".json?" + q.Encode()
	log.Debug().Str("url", fullURL).Msg("fetching listing")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build listing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("listing failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var listing Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, "", fmt.Errorf("decode listing response: %w", err)
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, listing.Data.After, nil
}
