package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shopfront/internal/pages"
	"github.com/five82/shopfront/internal/prefs"
	"github.com/five82/shopfront/internal/state"
)

// Navigator is the part of the router the UI drives. *router.Router
// satisfies it.
type Navigator interface {
	Navigate(ctx context.Context, target string, params map[string]string)
	Reload(ctx context.Context)
	Back(ctx context.Context) bool
	Forward(ctx context.Context) bool
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Router    Navigator
	Store     *state.Store
	Forms     *pages.Forms
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea. Rendered pages arrive
// as pageMsg; everything else here is transient UI state that never enters
// the store.
type Model struct {
	// Collaborators
	ctx       context.Context
	router    Navigator
	store     *state.Store
	forms     *pages.Forms
	logger    *zap.Logger
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Page output
	content viewport.Model
	page    pageMsg

	// Per-page selection
	selected int
	quantity int
	image    int

	search searchState
	form   formState

	notice    string
	noticeErr bool
}

// chromeHeight is the number of lines around the content viewport: header,
// nav bar, status line and footer.
const chromeHeight = 4

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	return Model{
		ctx:       ctx,
		router:    opts.Router,
		store:     opts.Store,
		forms:     opts.Forms,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		content:   viewport.New(0, 0),
		quantity:  1,
		search:    newSearchState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeContent()
		m.ready = true
		return m, nil

	case pageMsg:
		m.handlePage(msg)
		return m, nil

	case searchTickMsg:
		m.handleSearchTick(msg)
		return m, nil

	case formResultMsg:
		m.handleFormResult(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	body := m.content.View()
	if m.form.active {
		body = m.renderForm()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) resizeContent() {
	m.content.Width = m.width
	m.content.Height = max(1, m.height-chromeHeight)
	m.content.SetContent(m.page.view.Markup)
}

// handlePage shows newly committed output. Selection resets only when the
// path changes, so re-renders of the same page keep the cursor.
func (m *Model) handlePage(msg pageMsg) {
	changed := msg.path != m.page.path
	m.page = msg
	m.content.SetContent(msg.view.Markup)
	if changed {
		m.selected = 0
		m.quantity = 1
		m.image = 0
		m.content.GotoTop()
	}
	m.clampSelection()
}

// handleKey processes keyboard input. Open forms and the search box take
// keys before the global bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.form.active {
		return m.handleFormKey(msg)
	}
	if m.search.active {
		return m.handleSearchKey(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()

	case key.Matches(msg, m.keys.Nav):
		if target, ok := navTarget(msg.String()); ok {
			m.navigate(target)
		}

	case key.Matches(msg, m.keys.Back):
		if !m.router.Back(m.ctx) {
			m.setNotice("Already at the first page.", false)
		}

	case key.Matches(msg, m.keys.Forward):
		if !m.router.Forward(m.ctx) {
			m.setNotice("Already at the latest page.", false)
		}

	case key.Matches(msg, m.keys.Reload):
		m.router.Reload(m.ctx)

	case key.Matches(msg, m.keys.Search):
		return m, m.openSearch()

	case key.Matches(msg, m.keys.Open):
		return m, m.open()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.AddToCart):
		m.addToCart()

	case key.Matches(msg, m.keys.More):
		m.adjustQuantity(1)

	case key.Matches(msg, m.keys.Less):
		m.adjustQuantity(-1)

	case key.Matches(msg, m.keys.Remove):
		m.removeLine()

	case key.Matches(msg, m.keys.ClearCart):
		m.clearCart()

	case key.Matches(msg, m.keys.PrevImage):
		m.stepImage(-1)

	case key.Matches(msg, m.keys.NextImage):
		m.stepImage(1)

	case key.Matches(msg, m.keys.Logout):
		m.logout()

	default:
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) navigate(target string) {
	m.router.Navigate(m.ctx, target, nil)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

func navTarget(k string) (string, bool) {
	for _, link := range navLinks {
		if link.key == k {
			return link.path, true
		}
	}
	return "", false
}

// routePath strips the query string from a committed target.
func routePath(target string) string {
	path, _, _ := strings.Cut(target, "?")
	return path
}

// Run starts the Bubble Tea program and feeds it router output from surface
// until the program exits.
func Run(opts Options, surface *ProgramSurface) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	go surface.Pump(ctx, p.Send)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
