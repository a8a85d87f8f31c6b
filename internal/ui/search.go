package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopfront/internal/pages"
)

// SearchDebounce is how long typing must pause before a search runs.
const SearchDebounce = 300 * time.Millisecond

// searchState is the inline search box. Every edit bumps seq; only the tick
// carrying the latest seq runs the search.
type searchState struct {
	active bool
	input  textinput.Model
	seq    int
}

type searchTickMsg struct {
	seq int
}

func newSearchState() searchState {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "Search products..."
	in.CharLimit = 100
	return searchState{input: in}
}

func (m *Model) openSearch() tea.Cmd {
	m.search.active = true
	if routePath(m.page.path) != pages.PathSearch {
		m.search.input.SetValue("")
	}
	m.search.input.CursorEnd()
	return m.search.input.Focus()
}

func (m *Model) closeSearch() {
	m.search.active = false
	m.search.seq++
	m.search.input.Blur()
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.closeSearch()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		query := m.search.input.Value()
		m.closeSearch()
		m.navigate(pages.SearchTarget(query))
		return m, nil
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	if m.search.input.Value() == before {
		return m, cmd
	}

	m.search.seq++
	seq := m.search.seq
	return m, tea.Batch(cmd, tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	}))
}

func (m *Model) handleSearchTick(msg searchTickMsg) {
	if !m.search.active || msg.seq != m.search.seq {
		return
	}
	m.navigate(pages.SearchTarget(m.search.input.Value()))
}
