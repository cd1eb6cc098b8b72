package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/sky-shelf/internal/app"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/pipeline"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

const statusTTL = 3 * time.Second

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeJump
	modeAuthors
	modeConfirm
	modeInfo
	modeError
)

// collectionTab is the per-collection part of the browser. The view keeps
// its own filter state, so every tab remembers its search and toggles.
type collectionTab struct {
	state    models.QueryState
	data     *models.FetchData
	view     *pipeline.View
	selected int

	// restoreIndex is applied once the first data arrives; NoPages when
	// there is nothing to restore.
	restoreIndex int
}

type browserModel struct {
	ctx       context.Context
	services  *service.Services
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	tabs    map[models.Collection]*collectionTab
	active  int
	updates <-chan models.QueryState

	mode      mode
	search    textinput.Model
	jump      textinput.Model
	authorIdx int
	clearAll  bool

	status  string
	errMsg  string
	overlay string
	logout  bool
}

type browserOptions struct {
	active    models.Collection
	pageIndex int
	fuzziness float64
	buildInfo models.AppBuildInfo
}

func newBrowserModel(ctx context.Context, services *service.Services, updates <-chan models.QueryState, opts browserOptions, logger *logger.Logger) browserModel {
	search := textinput.New()
	search.Placeholder = "search text, alt text, handles"
	search.Prompt = "/ "
	search.Width = 50

	jump := textinput.New()
	jump.Placeholder = "page number"
	jump.Prompt = "page: "
	jump.CharLimit = 6
	jump.Width = 10

	m := browserModel{
		ctx:       ctx,
		services:  services,
		buildInfo: opts.buildInfo,
		logger:    logger,
		tabs:      make(map[models.Collection]*collectionTab, len(models.Collections)),
		updates:   updates,
		search:    search,
		jump:      jump,
	}

	for i, c := range models.Collections {
		m.tabs[c] = &collectionTab{
			state: models.QueryState{Collection: c, Status: models.QueryIdle},
			view:  pipeline.NewView(pipeline.Options{Fuzziness: opts.fuzziness}),

			restoreIndex: models.NoPages,
		}
		if c == opts.active {
			m.active = i
		}
	}
	m.tabs[m.collection()].restoreIndex = opts.pageIndex

	return m
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), m.cmdFetch(m.collection(), false))
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.applyState(msg.state)
		return m, m.waitForState()
	case subscriptionClosedMsg:
		return m, nil
	case fetchDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, service.ErrFetchSuperseded) && !errors.Is(msg.err, context.Canceled) {
			m.overlay = humanizeError(msg.err)
			m.mode = modeError
		}
		return m, nil
	case clearedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = app.MsgCacheCleared
		if msg.collection == "" {
			m.status = app.MsgAllCachesCleared
		}
		return m, clearStatusAfter()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = app.MsgLinkCopied
		return m, clearStatusAfter()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(keyMsg)
	case modeJump:
		return m.updateJump(keyMsg)
	case modeAuthors:
		return m.updateAuthors(keyMsg)
	case modeConfirm:
		return m.updateConfirm(keyMsg)
	case modeInfo:
		if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.info) {
			m.mode = modeBrowse
		}
		return m, nil
	case modeError:
		if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter) {
			m.mode = modeBrowse
			m.overlay = ""
		}
		return m, nil
	}

	return m.updateBrowse(keyMsg)
}

func (m browserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := m.tab()
	m.errMsg = ""

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(msg, keys.tab):
		return m.switchTab(1)
	case key.Matches(msg, keys.backtab):
		return m.switchTab(-1)
	case key.Matches(msg, keys.up):
		if tab.selected > 0 {
			tab.selected--
		}
	case key.Matches(msg, keys.down):
		if tab.selected < len(tab.view.Page().Items)-1 {
			tab.selected++
		}
	case key.Matches(msg, keys.prevPage):
		tab.view.PrevPage()
		tab.selected = 0
		return m, m.cmdSaveIndex(tab.view.Filter().PageIndex)
	case key.Matches(msg, keys.nextPage):
		tab.view.NextPage()
		tab.selected = 0
		return m, m.cmdSaveIndex(tab.view.Filter().PageIndex)
	case key.Matches(msg, keys.search):
		m.mode = modeSearch
		m.search.SetValue(tab.view.Filter().Query)
		m.search.CursorEnd()
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.jump):
		m.mode = modeJump
		m.jump.Reset()
		m.jump.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.authors):
		if tab.data == nil || len(tab.data.Authors) == 0 {
			m.status = app.MsgNoAuthors
			return m, clearStatusAfter()
		}
		m.mode = modeAuthors
		m.authorIdx = 0
	case key.Matches(msg, keys.embeds):
		kind := models.EmbedKinds[int(msg.String()[0]-'1')]
		tab.view.ToggleEmbed(kind)
		tab.selected = 0
	case key.Matches(msg, keys.flip):
		tab.view.ToggleFlip()
		tab.selected = 0
	case key.Matches(msg, keys.refetch):
		return m, m.cmdFetch(m.collection(), true)
	case key.Matches(msg, keys.clear):
		m.mode = modeConfirm
		m.clearAll = false
	case key.Matches(msg, keys.clearAll):
		m.mode = modeConfirm
		m.clearAll = true
	case key.Matches(msg, keys.copy):
		post, ok := m.selectedPost()
		if !ok || post.WebURL() == "" {
			m.status = app.MsgNoLink
			return m, clearStatusAfter()
		}
		return m, cmdCopy(post.WebURL())
	case key.Matches(msg, keys.info):
		m.mode = modeInfo
	}

	return m, nil
}

func (m browserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	tab := m.tab()
	tab.view.SetQuery(m.search.Value())
	tab.selected = 0
	return m, cmd
}

func (m browserModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.mode = modeBrowse
		m.jump.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		number, err := strconv.Atoi(strings.TrimSpace(m.jump.Value()))
		if err != nil {
			m.errMsg = app.MsgNotAPageNumber
			return m, nil
		}
		tab := m.tab()
		if err = tab.view.JumpToPage(number); err != nil {
			m.errMsg = app.MsgPageOutOfRange
			return m, nil
		}
		m.errMsg = ""
		m.mode = modeBrowse
		m.jump.Blur()
		tab.selected = 0
		return m, m.cmdSaveIndex(tab.view.Filter().PageIndex)
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m browserModel) updateAuthors(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := m.tab()
	var authors []models.ProfileViewBasic
	if tab.data != nil {
		authors = tab.data.Authors
	}

	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter), key.Matches(msg, keys.authors):
		m.mode = modeBrowse
	case key.Matches(msg, keys.up):
		if m.authorIdx > 0 {
			m.authorIdx--
		}
	case key.Matches(msg, keys.down):
		if m.authorIdx < len(authors)-1 {
			m.authorIdx++
		}
	case key.Matches(msg, keys.toggle):
		if m.authorIdx < len(authors) {
			tab.view.ToggleAuthor(authors[m.authorIdx].DID)
			tab.selected = 0
		}
	}
	return m, nil
}

func (m browserModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.mode = modeBrowse
		if m.clearAll {
			return m, m.cmdClear("")
		}
		return m, m.cmdClear(m.collection())
	case key.Matches(msg, keys.no):
		m.mode = modeBrowse
	}
	return m, nil
}

// updateInputs forwards non-key messages such as cursor blinks to the
// focused input.
func (m browserModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeJump:
		m.jump, cmd = m.jump.Update(msg)
	}
	return m, cmd
}

func (m browserModel) switchTab(step int) (tea.Model, tea.Cmd) {
	n := len(models.Collections)
	m.active = (m.active + step + n) % n
	m.mode = modeBrowse

	c := m.collection()
	cmds := []tea.Cmd{m.cmdSaveTab(c)}
	if tab := m.tab(); tab.state.Status == models.QueryIdle && !tab.state.Fetching {
		cmds = append(cmds, m.cmdFetch(c, false))
	}
	return m, tea.Batch(cmds...)
}

// applyState stores a state change and reloads the view when the data
// behind it was replaced.
func (m *browserModel) applyState(state models.QueryState) {
	tab, ok := m.tabs[state.Collection]
	if !ok {
		return
	}
	tab.state = state

	if state.Data == tab.data {
		return
	}
	tab.data = state.Data
	tab.view.SetSearcher(m.services.Orchestrator.Searcher(state.Collection))

	var posts []models.PostView
	if state.Data != nil {
		posts = state.Data.Posts
	}
	tab.view.SetData(posts)
	tab.selected = 0

	if len(posts) > 0 && tab.restoreIndex != models.NoPages {
		tab.view.SetPageIndex(tab.restoreIndex)
		tab.restoreIndex = models.NoPages
	}
}

func (m browserModel) collection() models.Collection {
	return models.Collections[m.active]
}

func (m browserModel) tab() *collectionTab {
	return m.tabs[m.collection()]
}

func (m browserModel) selectedPost() (models.PostView, bool) {
	tab := m.tab()
	items := tab.view.Page().Items
	if tab.selected < 0 || tab.selected >= len(items) {
		return models.PostView{}, false
	}
	return items[tab.selected], true
}

func (m browserModel) waitForState() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return subscriptionClosedMsg{}
		}
		return stateMsg{state: state}
	}
}

func (m browserModel) cmdFetch(c models.Collection, force bool) tea.Cmd {
	ctx := m.ctx
	orchestrator := m.services.Orchestrator

	return func() tea.Msg {
		var err error
		if force {
			_, err = orchestrator.Refetch(ctx, c)
		} else {
			_, err = orchestrator.Fetch(ctx, c, models.FetchOptions{})
		}
		return fetchDoneMsg{collection: c, err: err}
	}
}

func (m browserModel) cmdClear(c models.Collection) tea.Cmd {
	ctx := m.ctx
	orchestrator := m.services.Orchestrator

	return func() tea.Msg {
		if c == "" {
			return clearedMsg{err: orchestrator.ClearAll(ctx)}
		}
		return clearedMsg{collection: c, err: orchestrator.Clear(ctx, c)}
	}
}

func (m browserModel) cmdSaveTab(c models.Collection) tea.Cmd {
	ctx := m.ctx
	cache := m.services.CacheService
	log := m.logger

	return func() tea.Msg {
		if err := cache.SetLastTab(ctx, c); err != nil {
			log.Err(err).Str("func", "browserModel.cmdSaveTab").Msg("error saving last tab")
		}
		return nil
	}
}

func (m browserModel) cmdSaveIndex(index int) tea.Cmd {
	ctx := m.ctx
	cache := m.services.CacheService
	log := m.logger

	return func() tea.Msg {
		if err := cache.SetCurrentIndex(ctx, index); err != nil {
			log.Err(err).Str("func", "browserModel.cmdSaveIndex").Msg("error saving page index")
		}
		return nil
	}
}

func cmdCopy(link string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(link)}
	}
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m browserModel) View() string {
	switch m.mode {
	case modeInfo:
		return appStyle.Render(buildInfoOverlay(m.buildInfo))
	case modeError:
		return appStyle.Render(errorOverlay(m.overlay))
	case modeConfirm:
		target := string(m.collection()) + " cache"
		if m.clearAll {
			target = "every collection cache"
		}
		return appStyle.Render(confirmClearOverlay(target))
	}

	tab := m.tab()
	page := tab.view.Page()
	filter := tab.view.Filter()

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(viewStatus(tab.state))
	b.WriteString("\n")

	switch {
	case m.mode == modeSearch:
		b.WriteString(m.search.View())
		b.WriteString("\n")
	case filter.Query != "":
		b.WriteString("/ " + filter.Query + "\n")
	}

	b.WriteString(viewEmbeds(page.EmbedCounts, filter.Embeds))
	b.WriteString("\n")
	if len(filter.Authors) > 0 {
		b.WriteString(fmt.Sprintf("authors: %d selected\n", len(filter.Authors)))
	}
	b.WriteString("\n")

	if m.mode == modeAuthors {
		b.WriteString(m.viewAuthors(filter.Authors))
	} else {
		b.WriteString(viewPosts(page.Items, tab.selected, tab.state.HasData()))
	}

	b.WriteString("\n")
	b.WriteString(viewPager(page, tab.view.Flipped()))
	if m.mode == modeJump {
		b.WriteString("   ")
		b.WriteString(m.jump.View())
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("SKYSHELF", b.String(), m.hotKeys())
}

func (m browserModel) viewTabs() string {
	parts := make([]string, 0, len(models.Collections))
	for i, c := range models.Collections {
		label := string(c)
		if tab := m.tabs[c]; tab.state.Data != nil {
			label = fmt.Sprintf("%s (%d)", c, len(tab.state.Data.Posts))
		}
		if i == m.active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m browserModel) viewAuthors(selected []string) string {
	var b strings.Builder
	authors := m.tab().data.Authors
	for i, a := range authors {
		cursor := "  "
		if i == m.authorIdx {
			cursor = "> "
		}
		check := "[ ]"
		for _, did := range selected {
			if did == a.DID {
				check = "[x]"
				break
			}
		}
		line := fmt.Sprintf("%s%s @%s", cursor, check, a.Handle)
		if a.DisplayName != "" {
			line += "  " + a.DisplayName
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m browserModel) hotKeys() string {
	switch m.mode {
	case modeSearch:
		return "type to search │ enter/esc: done"
	case modeJump:
		return "enter: go │ esc: cancel"
	case modeAuthors:
		return "↑/↓: move │ space: toggle │ enter/esc: done"
	}
	return "tab: collection │ ←/→: page │ g: jump │ /: search │ a: authors │ 1-5: embeds │ f: flip │ r: refetch │ x/X: clear │ c: copy link │ i: info │ L: logout"
}

func viewStatus(state models.QueryState) string {
	switch {
	case state.IsLoading():
		return app.MsgLoading
	case state.IsSuccess() && state.Data == nil:
		return app.MsgNotIndexed
	}

	var parts []string
	if state.Data != nil {
		parts = append(parts, fmt.Sprintf("%d posts", len(state.Data.Posts)), fmt.Sprintf("%d authors", len(state.Data.Authors)))
		if n := state.Data.UnavailableCount(); n > 0 {
			parts = append(parts, fmt.Sprintf("%d unavailable", n))
		}
		if !state.UpdatedAt.IsZero() {
			parts = append(parts, "updated "+state.UpdatedAt.Local().Format("Jan 2 15:04"))
		}
	}
	if state.IsFetching() {
		parts = append(parts, app.MsgRefetching)
	}

	line := strings.Join(parts, " · ")
	if state.IsError() && state.Err != nil {
		if line != "" {
			line += "\n"
		}
		line += errorStyle.Render("fetch failed: " + humanizeError(state.Err))
	}
	return line
}

func viewEmbeds(counts models.EmbedCounts, active []models.EmbedKind) string {
	parts := make([]string, 0, len(models.EmbedKinds))
	for i, kind := range models.EmbedKinds {
		label := fmt.Sprintf("%d %s %d", i+1, kind, counts.Get(kind))
		on := false
		for _, a := range active {
			if a == kind {
				on = true
				break
			}
		}
		if on {
			parts = append(parts, toggleOnStyle.Render(label))
		} else {
			parts = append(parts, "["+label+"]")
		}
	}
	return strings.Join(parts, " ")
}

func viewPosts(posts []models.PostView, selected int, hasData bool) string {
	if len(posts) == 0 {
		if hasData {
			return app.MsgNoPosts + "\n"
		}
		return ""
	}

	var b strings.Builder
	for i, p := range posts {
		cursor := "  "
		if i == selected {
			cursor = "> "
		}
		text := fitText(firstLine(p.Record.Text), 80)
		if tag := embedTag(p.Embed); tag != "" {
			text = tag + " " + text
		}
		line := cursor + handleStyle.Render("@"+p.Author.Handle) + "  " + text
		if i == selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func viewPager(page models.PostsPage, flipped bool) string {
	if page.PageIndex == models.NoPages {
		return "page -/-"
	}
	line := fmt.Sprintf("page %d/%d · %d posts", page.PageIndex+1, page.PageCount, page.Total)
	if flipped {
		line += " · oldest first"
	}
	return line
}

// embedTag names the embeds of a post, for example "[image+post]".
func embedTag(embed *models.EmbedView) string {
	if embed == nil {
		return ""
	}
	counts := pipeline.CountEmbeds(embed)
	var kinds []string
	for _, kind := range models.EmbedKinds {
		if kind != models.EmbedNone && counts.Get(kind) > 0 {
			kinds = append(kinds, string(kind))
		}
	}
	if len(kinds) == 0 {
		return ""
	}
	return "[" + strings.Join(kinds, "+") + "]"
}
