package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/heroes/internal/model"
)

const (
	topHeroCount   = 4
	searchDebounce = 300 * time.Millisecond
)

type (
	topHeroesMsg struct {
		heroes []model.Hero
		err    error
	}
	// searchTickMsg fires searchDebounce after keystroke seq.
	searchTickMsg struct {
		seq  int
		term string
	}
	searchResultsMsg struct {
		search int
		heroes []model.Hero
		err    error
	}
)

// DashboardModel shows the strongest heroes and a debounced name search.
type DashboardModel struct {
	svc HeroService

	top     []model.Hero
	results []model.Hero
	cursor  int

	search   textinput.Model
	seq      int    // last keystroke
	searchID int    // last issued search; older results are dropped
	lastTerm string // last issued term; repeats are skipped

	status string
}

func NewDashboardModel(svc HeroService) *DashboardModel {
	ti := textinput.New()
	ti.Prompt = "search: "
	ti.Placeholder = "hero name"
	ti.CharLimit = 100
	ti.Focus()
	return &DashboardModel{svc: svc, search: ti}
}

func (m *DashboardModel) Init() tea.Cmd {
	svc := m.svc
	return tea.Batch(textinput.Blink, func() tea.Msg {
		heroes, err := svc.GetHeroes(context.Background())
		return topHeroesMsg{heroes: heroes, err: err}
	})
}

// TopHeroes returns the strongest heroes, strongest first.
func (m *DashboardModel) TopHeroes() []model.Hero {
	return append([]model.Hero(nil), m.top...)
}

// Results returns the latest search results.
func (m *DashboardModel) Results() []model.Hero {
	return append([]model.Hero(nil), m.results...)
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case topHeroesMsg:
		if msg.err != nil {
			m.status = "could not load heroes"
			return m, nil
		}
		m.top = model.Strongest(msg.heroes, topHeroCount)
		m.clampCursor()
		return m, nil

	case searchTickMsg:
		return m, m.onTick(msg)

	case searchResultsMsg:
		if msg.search != m.searchID {
			return m, nil
		}
		if msg.err != nil {
			m.status = "search failed"
			return m, nil
		}
		m.status = ""
		m.results = msg.heroes
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.entries())-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			entries := m.entries()
			if m.cursor < len(entries) {
				return m, HeroRow{Hero: entries[m.cursor]}.Open()
			}
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if term := m.search.Value(); term != before {
			m.seq++
			seq := m.seq
			return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchTickMsg{seq: seq, term: term}
			}))
		}
		return m, cmd
	}
	// cursor blink
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// onTick issues a search when the tick belongs to the latest keystroke and
// the term differs from the last one searched.
func (m *DashboardModel) onTick(msg searchTickMsg) tea.Cmd {
	if msg.seq != m.seq {
		return nil
	}
	term := strings.TrimSpace(msg.term)
	if term == m.lastTerm {
		return nil
	}
	m.lastTerm = term
	m.searchID++
	if term == "" {
		m.results = nil
		m.clampCursor()
		return nil
	}
	id, svc := m.searchID, m.svc
	return func() tea.Msg {
		heroes, err := svc.SearchHeroes(context.Background(), term)
		return searchResultsMsg{search: id, heroes: heroes, err: err}
	}
}

// entries is the selectable list: top heroes, then search results.
func (m *DashboardModel) entries() []model.Hero {
	return append(m.TopHeroes(), m.results...)
}

func (m *DashboardModel) clampCursor() {
	if n := len(m.entries()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Top Heroes"))
	b.WriteString("\n")
	if len(m.top) == 0 {
		b.WriteString(mutedStyle.Render("  (none yet)") + "\n")
	}
	idx := 0
	line := func(h model.Hero) {
		prefix := "  "
		if idx == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, h.Name, strongStyle.Render(fmt.Sprintf("%d", h.Strength)))
		idx++
	}
	for _, h := range m.top {
		line(h)
	}

	b.WriteString("\n" + titleStyle.Render("Hero Search") + "\n")
	b.WriteString(m.search.View() + "\n")
	switch {
	case len(m.results) > 0:
		for _, h := range m.results {
			line(h)
		}
	case m.lastTerm != "":
		b.WriteString(mutedStyle.Render("  no matches") + "\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • enter details • tab heroes"))
	return b.String()
}
