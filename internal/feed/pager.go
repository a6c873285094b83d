// Package feed accumulates normalized posts from a paginated listing
// source, one cursor-addressed page at a time.
package feed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/reddit"
)

// Lister fetches one listing page. Satisfied by reddit.Client.
type Lister interface {
	Listing(ctx context.Context, source reddit.Source, sort, after string) ([]reddit.Post, string, error)
}

// Pager tracks the cursor and sort for one feed source and appends each
// fetched page's media posts to an accumulated list. Append-only, no
// deduplication; pagination stops once the upstream cursor runs out.
type Pager struct {
	client Lister

	source reddit.Source
	sort   string

	after   string
	started bool
	loading bool

	posts []media.Post
}

func NewPager(client Lister, source reddit.Source, sort string) *Pager {
	return &Pager{client: client, source: source, sort: sort}
}

func (p *Pager) Source() reddit.Source { return p.source }
func (p *Pager) Sort() string { return p.sort }
func (p *Pager) Posts() []media.Post { return p.posts }
func (p *Pager) Loading() bool { return p.loading }

// HasMore reports whether another page can be requested. An empty cursor
// after the first fetch means the feed is exhausted.
func (p *Pager) HasMore() bool {
	return !p.started || p.after != ""
}

// Reset points the pager at a new source and sort, clearing accumulated
// posts and re-arming pagination from the first page.
func (p *Pager) Reset(source reddit.Source, sort string) {
	p.source = source
	p.sort = sort
	p.after = ""
	p.started = false
	p.loading = false
	p.posts = nil
}

// Fetch loads the next page, filters it to media-bearing posts and
// appends them in upstream order. A call while a fetch is in flight or
// after the feed is exhausted is a no-op. On failure the accumulated
// posts and the cursor are left untouched so the next trigger retries the
// same page.
func (p *Pager) Fetch(ctx context.Context) (int, error) {
	if p.loading || !p.HasMore() {
		return 0, nil
	}
	p.loading = true
	defer func() { p.loading = false }()

	raw, after, err := p.client.Listing(ctx, p.source, p.sort, p.after)
	if err != nil {
		log.Warn().Err(err).Str("source", p.source.Label()).Msg("listing fetch failed")
		return 0, fmt.Errorf("fetch %s listing: %w", p.source.Label(), err)
	}

	appended := 0
	for _, rp := range raw {
		if !media.HasMedia(rp) {
			continue
		}
		p.posts = append(p.posts, media.ParsePost(rp))
		appended++
	}

	p.after = after
	p.started = true
	return appended, nil
}
