package reddit

import (
	"fmt"
	"strings"
)

// Sort orders accepted by the listing endpoints.
const (
	SortHot    = "hot"
	SortNew    = "new"
	SortTop    = "top"
	SortRising = "rising"
)

var Sorts = []string{SortHot, SortNew, SortTop, SortRising}

func ValidSort(sort string) bool {
	for _, s := range Sorts {
		if s == sort {
			return true
		}
	}
	return false
}

type SourceKind int

const (
	// FrontPage is the unscoped listing.
	FrontPage SourceKind = iota
	// SubredditFeed scopes the listing to /r/<name>.
	SubredditFeed
	// UserFeed scopes the listing to a user's submissions.
	UserFeed
)

// Source identifies one feed: the front page, a subreddit, or a user's
// submitted posts.
type Source struct {
	Kind SourceKind
	Name string
}

func Front() Source { return Source{Kind: FrontPage} }
func SubredditSource(name string) Source { return Source{Kind: SubredditFeed, Name: name} }
func UserSource(name string) Source { return Source{Kind: UserFeed, Name: name} }

// ParseTarget interprets a free-text navigation target: "r/<name>" is a
// subreddit, "u/<name>" a user, and a bare name defaults to a subreddit.
// An empty target is the front page.
func ParseTarget(input string) Source {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return Front()
	case strings.HasPrefix(trimmed, "r/"):
		return SubredditSource(trimmed[2:])
	case strings.HasPrefix(trimmed, "u/"):
		return UserSource(trimmed[2:])
	default:
		return SubredditSource(trimmed)
	}
}

// Path returns the endpoint path for this source under the given sort,
// without the .json suffix.
func (s Source) Path(sort string) string {
	switch s.Kind {
	case SubredditFeed:
		return fmt.Sprintf("/r/%s/%s", s.Name, sort)
	case UserFeed:
		return fmt.Sprintf("/user/%s/submitted", s.Name)
	default:
		return "/" + sort
	}
}

// Label is the breadcrumb shown in the UI header.
func (s Source) Label() string {
	switch s.Kind {
	case SubredditFeed:
		return "r/" + s.Name
	case UserFeed:
		return "u/" + s.Name
	default:
		return "Front Page"
	}
}
