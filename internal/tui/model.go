package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/glabrego/griddit/internal/app"
	"github.com/glabrego/griddit/internal/feed"
	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/reddit"
	"github.com/glabrego/griddit/internal/storage"
	"github.com/glabrego/griddit/internal/tui/platform"
	"github.com/glabrego/griddit/internal/tui/state"
	tuitheme "github.com/glabrego/griddit/internal/tui/theme"
	"github.com/glabrego/griddit/internal/tui/view"
)

// Service is the slice of the application layer the model drives.
type Service interface {
	SaveSettings(ctx context.Context, settings storage.Settings) error
	SavedPosts(ctx context.Context) ([]media.Post, error)
	RecentSaved(ctx context.Context, limit int) ([]media.Post, error)
	SavePost(ctx context.Context, post media.Post) error
	RemovePost(ctx context.Context, postID string) error
	Followed(ctx context.Context) (app.Followed, error)
	FollowSource(ctx context.Context, source reddit.Source) error
	UnfollowSub(ctx context.Context, name string) error
	UnfollowUser(ctx context.Context, name string) error
	Download(ctx context.Context, post media.Post, mediaIndex int) (string, error)
}

// Feed is the pager surface the model consumes. A fresh Feed is created
// whenever the target or sort changes so responses from an abandoned
// feed can never land in the new one.
type Feed interface {
	Fetch(ctx context.Context) (int, error)
	Posts() []media.Post
	HasMore() bool
	Source() reddit.Source
	Sort() string
}

type mode int

const (
	modeGrid mode = iota
	modeLightbox
	modePanel
	modeSearch
)

func (m mode) String() string {
	switch m {
	case modeLightbox:
		return "lightbox"
	case modePanel:
		return "panel"
	case modeSearch:
		return "search"
	default:
		return "grid"
	}
}

type pageLoadedMsg struct {
	gen     int
	posts   []media.Post
	hasMore bool
}

type pageErrorMsg struct {
	gen int
	err error
}

type savedIDsMsg struct {
	ids map[string]bool
}

type postSavedMsg struct {
	postID string
	saved  bool
}

type panelLoadedMsg struct {
	followed app.Followed
	saved    []media.Post
}

type panelItemRemovedMsg struct {
	followed      app.Followed
	saved         []media.Post
	removedPostID string
}

type actionSuccessMsg struct {
	status string
}

type actionErrorMsg struct {
	err error
}

type settingsSaveErrorMsg struct {
	err error
}

type clearStatusMsg struct {
	id int
}

type Model struct {
	service Service
	feed    Feed

	mode     mode
	posts    []media.Post
	cursor   int
	lightbox state.LightboxPos
	hasMore  bool
	gen      int

	settings storage.Settings
	theme    tuitheme.Theme

	searchBuffer string
	savedIDs     map[string]bool
	followed     app.Followed
	recentSaved  []media.Post
	panelCursor  int

	width    int
	height   int
	loading  bool
	status   string
	statusID int
	err      error

	newFeedFn func(source reddit.Source, sort string) Feed
	openURLFn func(string) error
	copyURLFn func(string) error
	nowFn     func() time.Time
}

func NewModel(service Service, lister feed.Lister, source reddit.Source, sort string, settings storage.Settings) Model {
	settings = settings.Normalize()
	m := Model{
		service:  service,
		settings: settings,
		theme:    tuitheme.ForName(settings.Theme),
		savedIDs: make(map[string]bool),
		newFeedFn: func(src reddit.Source, srt string) Feed {
			return feed.NewPager(lister, src, srt)
		},
		openURLFn: platform.OpenURLInBrowser,
		copyURLFn: platform.CopyURLToClipboard,
		nowFn:     time.Now,
	}
	m.feed = m.newFeedFn(source, sort)
	m.loading = true
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchPageCmd(m.feed, m.gen),
		loadSavedIDsCmd(m.service),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeLightbox:
			return m.updateLightbox(msg)
		case modePanel:
			return m.updatePanel(msg)
		default:
			return m.updateGrid(msg)
		}
	case pageLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.posts = lo.Filter(msg.posts, func(p media.Post, _ int) bool {
			return len(p.Media) > 0
		})
		m.hasMore = msg.hasMore
		m.cursor = state.ClampIndex(m.cursor, len(m.posts))
		return m, nil
	case pageErrorMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		return m, nil
	case savedIDsMsg:
		m.savedIDs = msg.ids
		return m, nil
	case postSavedMsg:
		m.savedIDs[msg.postID] = msg.saved
		if msg.saved {
			m.status = "saved"
		} else {
			m.status = "removed from saved"
		}
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case panelLoadedMsg:
		m.followed = msg.followed
		m.recentSaved = msg.saved
		m.panelCursor = state.ClampIndex(m.panelCursor, len(m.panelItems()))
		return m, nil
	case panelItemRemovedMsg:
		m.followed = msg.followed
		m.recentSaved = msg.saved
		if msg.removedPostID != "" {
			delete(m.savedIDs, msg.removedPostID)
		}
		m.panelCursor = state.ClampIndex(m.panelCursor, len(m.panelItems()))
		return m, nil
	case actionSuccessMsg:
		m.err = nil
		m.status = msg.status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case actionErrorMsg:
		m.status = msg.err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case settingsSaveErrorMsg:
		m.err = msg.err
		m.status = "could not persist settings"
		return m, nil
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "h":
		return m.moveCursor(-1)
	case "right", "l":
		return m.moveCursor(1)
	case "up", "k":
		return m.moveCursor(-m.settings.Columns)
	case "down", "j":
		return m.moveCursor(m.settings.Columns)
	case "enter":
		if len(m.posts) == 0 {
			return m, nil
		}
		m.mode = modeLightbox
		m.lightbox = state.LightboxPos{Post: m.cursor, Media: 0}
		return m, nil
	case "/":
		m.mode = modeSearch
		m.searchBuffer = ""
		return m, nil
	case "1":
		return m.changeSort(reddit.SortHot)
	case "2":
		return m.changeSort(reddit.SortNew)
	case "3":
		return m.changeSort(reddit.SortTop)
	case "4":
		return m.changeSort(reddit.SortRising)
	case "r":
		return m.resetFeed(m.feed.Source(), m.feed.Sort())
	case "f":
		return m, followCmd(m.service, m.feed.Source())
	case "p":
		m.mode = modePanel
		return m, loadPanelCmd(m.service)
	case "c":
		next := m.settings.Columns + 1
		if next > storage.MaxColumns {
			next = storage.MinColumns
		}
		m.settings.Columns = next
		return m.persistSettings()
	case "a":
		m.settings.AspectRatio = nextAspect(m.settings.AspectRatio)
		return m.persistSettings()
	case "t":
		if m.settings.Theme == storage.ThemeDark {
			m.settings.Theme = storage.ThemeLight
		} else {
			m.settings.Theme = storage.ThemeDark
		}
		m.theme = tuitheme.ForName(m.settings.Theme)
		return m.persistSettings()
	case "x":
		m.settings.ShowNSFW = !m.settings.ShowNSFW
		return m.persistSettings()
	}
	return m, nil
}

func (m Model) updateLightbox(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeGrid
		m.cursor = state.ClampIndex(m.lightbox.Post, len(m.posts))
		return m, nil
	case "left", "h":
		m.lightbox = state.PrevMedia(m.lightbox, m.posts)
		return m, nil
	case "right", "l":
		m.lightbox = state.NextMedia(m.lightbox, m.posts)
		return m, m.maybeFetchMoreFromLightbox()
	case "s":
		return m.toggleSaveCurrent()
	case "d":
		return m.downloadCurrent()
	case "o":
		return m.openCurrentMedia()
	case "y":
		return m.copyCurrentMedia()
	case "f":
		return m, followCmd(m.service, m.feed.Source())
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		m.lightbox = state.JumpMedia(m.lightbox, m.posts, int(key[0]-'1'))
		return m, nil
	}
	return m, nil
}

func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "p", "backspace":
		m.mode = modeGrid
		return m, nil
	case "up", "k":
		m.panelCursor = state.ClampIndex(m.panelCursor-1, len(m.panelItems()))
		return m, nil
	case "down", "j":
		m.panelCursor = state.ClampIndex(m.panelCursor+1, len(m.panelItems()))
		return m, nil
	case "enter":
		items := m.panelItems()
		if m.panelCursor >= len(items) {
			return m, nil
		}
		switch item := items[m.panelCursor]; item.kind {
		case panelSub:
			m.mode = modeGrid
			return m.resetFeed(reddit.SubredditSource(item.name), m.feed.Sort())
		case panelUser:
			m.mode = modeGrid
			return m.resetFeed(reddit.UserSource(item.name), m.feed.Sort())
		}
		return m, nil
	case "x", "d":
		items := m.panelItems()
		if m.panelCursor >= len(items) {
			return m, nil
		}
		return m, removePanelItemCmd(m.service, items[m.panelCursor])
	}
	return m, nil
}

type panelItemKind int

const (
	panelSub panelItemKind = iota
	panelUser
	panelSaved
)

type panelItem struct {
	kind panelItemKind
	name string
	post media.Post
}

// panelItems flattens the panel into one cursor-addressable list:
// followed subreddits, then followed users, then recent saved posts.
// view.RenderPanel renders rows in the same order.
func (m Model) panelItems() []panelItem {
	items := make([]panelItem, 0, len(m.followed.Subs)+len(m.followed.Users)+len(m.recentSaved))
	for _, sub := range m.followed.Subs {
		items = append(items, panelItem{kind: panelSub, name: sub})
	}
	for _, user := range m.followed.Users {
		items = append(items, panelItem{kind: panelUser, name: user})
	}
	for _, post := range m.recentSaved {
		items = append(items, panelItem{kind: panelSaved, name: post.ID, post: post})
	}
	return items
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeGrid
		m.searchBuffer = ""
		return m, nil
	case tea.KeyBackspace:
		if m.searchBuffer != "" {
			runes := []rune(m.searchBuffer)
			m.searchBuffer = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyEnter:
		target := strings.TrimSpace(m.searchBuffer)
		m.mode = modeGrid
		m.searchBuffer = ""
		return m.resetFeed(reddit.ParseTarget(target), m.feed.Sort())
	case tea.KeyRunes, tea.KeySpace:
		m.searchBuffer += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	m.cursor = state.MoveGridCursor(m.cursor, delta, len(m.posts))
	return m, m.maybeFetchMore()
}

// maybeFetchMore requests the next page once the cursor nears the end
// of what is loaded. The loading flag keeps a single fetch in flight.
func (m *Model) maybeFetchMore() tea.Cmd {
	if m.loading || !m.hasMore {
		return nil
	}
	if !state.NearEnd(m.cursor, len(m.posts), m.settings.Columns) {
		return nil
	}
	m.loading = true
	return fetchPageCmd(m.feed, m.gen)
}

func (m *Model) maybeFetchMoreFromLightbox() tea.Cmd {
	if m.loading || !m.hasMore {
		return nil
	}
	if m.lightbox.Post < len(m.posts)-2 {
		return nil
	}
	m.loading = true
	return fetchPageCmd(m.feed, m.gen)
}

func (m Model) changeSort(sort string) (tea.Model, tea.Cmd) {
	if sort == m.feed.Sort() {
		return m, nil
	}
	return m.resetFeed(m.feed.Source(), sort)
}

// resetFeed abandons the current feed and starts over. Bumping the
// generation makes any in-flight response from the old feed a no-op.
func (m Model) resetFeed(source reddit.Source, sort string) (tea.Model, tea.Cmd) {
	m.gen++
	m.feed = m.newFeedFn(source, sort)
	m.posts = nil
	m.cursor = 0
	m.hasMore = true
	m.loading = true
	m.err = nil
	return m, fetchPageCmd(m.feed, m.gen)
}

func (m Model) persistSettings() (tea.Model, tea.Cmd) {
	m.settings = m.settings.Normalize()
	return m, persistSettingsCmd(m.service, m.settings)
}

func (m Model) currentLightboxPost() (media.Post, bool) {
	if m.lightbox.Post < 0 || m.lightbox.Post >= len(m.posts) {
		return media.Post{}, false
	}
	return m.posts[m.lightbox.Post], true
}

func (m Model) toggleSaveCurrent() (tea.Model, tea.Cmd) {
	post, ok := m.currentLightboxPost()
	if !ok {
		return m, nil
	}
	return m, toggleSaveCmd(m.service, post, m.savedIDs[post.ID])
}

func (m Model) downloadCurrent() (tea.Model, tea.Cmd) {
	post, ok := m.currentLightboxPost()
	if !ok {
		return m, nil
	}
	return m, downloadCmd(m.service, post, m.lightbox.Media)
}

func (m Model) openCurrentMedia() (tea.Model, tea.Cmd) {
	post, ok := m.currentLightboxPost()
	if !ok || m.lightbox.Media >= len(post.Media) {
		return m, nil
	}
	return m, openURLCmd(post.Media[m.lightbox.Media].URL, m.openURLFn)
}

func (m Model) copyCurrentMedia() (tea.Model, tea.Cmd) {
	post, ok := m.currentLightboxPost()
	if !ok || m.lightbox.Media >= len(post.Media) {
		return m, nil
	}
	return m, copyURLCmd(post.Media[m.lightbox.Media].URL, m.copyURLFn)
}

func nextAspect(aspect string) string {
	switch aspect {
	case storage.AspectSquare:
		return storage.AspectPortrait
	case storage.AspectPortrait:
		return storage.AspectLandscape
	case storage.AspectLandscape:
		return storage.AspectAuto
	default:
		return storage.AspectSquare
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(view.Header(m.feed.Source().Label(), m.feed.Sort(), m.theme))
	b.WriteString("\n")
	b.WriteString(view.Toolbar(m.mode.String()))
	b.WriteString("\n\n")

	switch m.mode {
	case modeLightbox:
		if post, ok := m.currentLightboxPost(); ok {
			b.WriteString(view.RenderLightbox(view.LightboxParams{
				Post:       post,
				MediaIndex: m.lightbox.Media,
				Width:      m.contentWidth(),
				Saved:      m.savedIDs[post.ID],
				Now:        m.nowFn(),
			}, m.theme))
		} else {
			b.WriteString("No post selected.")
		}
	case modePanel:
		b.WriteString(view.RenderPanel(view.PanelParams{
			Subs:     m.followed.Subs,
			Users:    m.followed.Users,
			Saved:    m.recentSaved,
			Settings: m.settings,
			Cursor:   m.panelCursor,
			Width:    m.contentWidth(),
			Now:      m.nowFn(),
		}, m.theme))
	case modeSearch:
		b.WriteString(view.SearchPrompt(m.searchBuffer, m.theme))
	default:
		b.WriteString(m.gridView())
	}

	b.WriteString("\n\n")
	b.WriteString(view.StatusLine(m.loading, m.err != nil, m.status, errText(m.err), len(m.posts), m.hasMore, m.theme))
	b.WriteString("\n")
	return b.String()
}

func (m Model) gridView() string {
	if len(m.posts) == 0 {
		if m.loading {
			return "Loading posts..."
		}
		return "No media posts here."
	}
	columns := m.settings.Columns
	totalRows := (len(m.posts) + columns - 1) / columns
	start, end := state.GridWindow(totalRows, m.cursor/columns, m.gridWindowRows())
	return view.RenderGrid(view.GridParams{
		Posts:    m.posts,
		Cursor:   m.cursor,
		Columns:  columns,
		Width:    m.contentWidth(),
		StartRow: start,
		EndRow:   end,
		Aspect:   m.settings.AspectRatio,
		ShowNSFW: m.settings.ShowNSFW,
		Now:      m.nowFn(),
	}, m.theme)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 100
	}
	return m.width
}

func (m Model) gridWindowRows() int {
	cardWidth := m.contentWidth()/m.settings.Columns - 2
	cardHeight := view.CardRows(m.settings.AspectRatio, cardWidth) + 2
	height := m.height
	if height <= 0 {
		height = 30
	}
	rows := (height - 6) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func fetchPageCmd(f Feed, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := f.Fetch(ctx); err != nil {
			return pageErrorMsg{gen: gen, err: err}
		}
		return pageLoadedMsg{gen: gen, posts: f.Posts(), hasMore: f.HasMore()}
	}
}

func loadSavedIDsCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		posts, err := service.SavedPosts(ctx)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		ids := make(map[string]bool, len(posts))
		for _, p := range posts {
			ids[p.ID] = true
		}
		return savedIDsMsg{ids: ids}
	}
}

func toggleSaveCmd(service Service, post media.Post, saved bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if saved {
			if err := service.RemovePost(ctx, post.ID); err != nil {
				return actionErrorMsg{err: err}
			}
			return postSavedMsg{postID: post.ID, saved: false}
		}
		if err := service.SavePost(ctx, post); err != nil {
			return actionErrorMsg{err: err}
		}
		return postSavedMsg{postID: post.ID, saved: true}
	}
}

func downloadCmd(service Service, post media.Post, mediaIndex int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		path, err := service.Download(ctx, post, mediaIndex)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		return actionSuccessMsg{status: fmt.Sprintf("downloaded %s", path)}
	}
}

func followCmd(service Service, source reddit.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := service.FollowSource(ctx, source); err != nil {
			return actionErrorMsg{err: err}
		}
		return actionSuccessMsg{status: fmt.Sprintf("following %s", source.Label())}
	}
}

func removePanelItemCmd(service Service, item panelItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var removedPostID string
		var err error
		switch item.kind {
		case panelSub:
			err = service.UnfollowSub(ctx, item.name)
		case panelUser:
			err = service.UnfollowUser(ctx, item.name)
		case panelSaved:
			removedPostID = item.post.ID
			err = service.RemovePost(ctx, removedPostID)
		}
		if err != nil {
			return actionErrorMsg{err: err}
		}

		followed, err := service.Followed(ctx)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		saved, err := service.RecentSaved(ctx, 10)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		return panelItemRemovedMsg{followed: followed, saved: saved, removedPostID: removedPostID}
	}
}

func loadPanelCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		followed, err := service.Followed(ctx)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		saved, err := service.RecentSaved(ctx, 10)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		return panelLoadedMsg{followed: followed, saved: saved}
	}
}

func persistSettingsCmd(service Service, settings storage.Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := service.SaveSettings(ctx, settings); err != nil {
			return settingsSaveErrorMsg{err: err}
		}
		return nil
	}
}

func openURLCmd(rawURL string, openFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		valid, err := platform.ValidateMediaURL(rawURL)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		if err := openFn(valid); err != nil {
			return actionErrorMsg{err: fmt.Errorf("open in browser: %w", err)}
		}
		return actionSuccessMsg{status: "opened in browser"}
	}
}

func copyURLCmd(rawURL string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		valid, err := platform.ValidateMediaURL(rawURL)
		if err != nil {
			return actionErrorMsg{err: err}
		}
		if err := copyFn(valid); err != nil {
			return actionErrorMsg{err: fmt.Errorf("copy URL: %w", err)}
		}
		return actionSuccessMsg{status: "URL copied"}
	}
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
