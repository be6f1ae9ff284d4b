package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/heroes/internal/model"
)

// HeroRow is one rendered hero in the list. It implements list.Item.
type HeroRow struct {
	Hero model.Hero
}

func (r HeroRow) FilterValue() string { return r.Hero.Name }

// Link is the row's navigation target.
func (r HeroRow) Link() string { return r.Hero.Link() }

// Delete is the row's delete affordance. It emits a request for exactly
// this row's hero; the list view decides what deleting means.
func (r HeroRow) Delete() tea.Cmd {
	h := r.Hero
	return func() tea.Msg { return DeleteRequestMsg{Hero: h} }
}

// Open navigates to the row's detail view.
func (r HeroRow) Open() tea.Cmd {
	path := r.Link()
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

type (
	heroesLoadedMsg struct {
		heroes []model.Hero
		err    error
	}
	heroAddedMsg struct {
		hero model.Hero
		err  error
	}
	heroDeletedMsg struct {
		hero model.Hero
		err  error
	}
)

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(HeroRow)
	if !ok {
		return
	}
	id := accentStyle.Render(fmt.Sprintf("%3d", row.Hero.ID))
	strength := mutedStyle.Render(fmt.Sprintf("(%d)", row.Hero.Strength))

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, id, row.Hero.Name, strength)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	openBind   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	reloadBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
)

// HeroesModel is the hero list view. It owns the local hero list.
type HeroesModel struct {
	svc    HeroService
	heroes []model.Hero
	list   list.Model

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	status string
}

func NewHeroesModel(svc HeroService) *HeroesModel {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = "My Heroes"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("hero", "heroes")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, deleteBind, openBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, deleteBind, openBind, reloadBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Hero name..."
	ti.CharLimit = 100

	m := &HeroesModel{svc: svc, list: l, ti: ti}
	m.setSize(widthHeight())
	return m
}

// Init requests every hero; the result replaces the local list.
func (m *HeroesModel) Init() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		heroes, err := svc.GetHeroes(context.Background())
		return heroesLoadedMsg{heroes: heroes, err: err}
	}
}

// Heroes returns a copy of the local list.
func (m *HeroesModel) Heroes() []model.Hero {
	return append([]model.Hero(nil), m.heroes...)
}

// SetHeroes replaces the local list.
func (m *HeroesModel) SetHeroes(heroes []model.Hero) {
	m.heroes = append([]model.Hero(nil), heroes...)
	m.syncRows()
}

// Rows returns one row per hero, in list order.
func (m *HeroesModel) Rows() []HeroRow {
	rows := make([]HeroRow, len(m.heroes))
	for i, h := range m.heroes {
		rows[i] = HeroRow{Hero: h}
	}
	return rows
}

// Select moves the cursor to the row at index.
func (m *HeroesModel) Select(index int) { m.list.Select(index) }

// Delete drops the first hero with h's id from the local list right away and
// returns the single command that asks the service to delete h. The local
// removal is not rolled back if the service fails.
func (m *HeroesModel) Delete(h model.Hero) tea.Cmd {
	if i := model.IndexOf(m.heroes, h.ID); i >= 0 {
		m.heroes = slices.Delete(m.heroes, i, i+1)
		m.syncRows()
	}
	svc := m.svc
	return func() tea.Msg {
		return heroDeletedMsg{hero: h, err: svc.DeleteHero(context.Background(), h)}
	}
}

// Add asks the service to create a hero called name; the created hero is
// appended once the result arrives. A blank name is a no-op.
func (m *HeroesModel) Add(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	svc := m.svc
	return func() tea.Msg {
		h, err := svc.AddHero(context.Background(), model.Hero{Name: name})
		return heroAddedMsg{hero: h, err: err}
	}
}

func (m *HeroesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case heroesLoadedMsg:
		if msg.err != nil {
			m.status = "could not load heroes"
			return m, nil
		}
		m.status = ""
		m.SetHeroes(msg.heroes)
		return m, nil

	case heroAddedMsg:
		if msg.err != nil {
			m.status = "could not add hero"
			return m, nil
		}
		m.heroes = append(m.heroes, msg.hero)
		m.syncRows()
		m.list.Select(len(m.heroes) - 1)
		return m, nil

	case heroDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not delete %s", msg.hero.Name)
		}
		return m, nil

	case DeleteRequestMsg:
		return m, m.Delete(msg.Hero)

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			return m, m.ti.Focus()
		case "r":
			return m, m.Init()
		case "d":
			if row, ok := m.selected(); ok {
				return m, row.Delete()
			}
			return m, nil
		case "enter":
			if row, ok := m.selected(); ok {
				return m, row.Open()
			}
			return m, nil
		}
	}

	if m.adding {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *HeroesModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := m.Add(m.ti.Value())
		if cmd == nil {
			m.addErr = "Name cannot be empty"
			return m, nil
		}
		m.stopAdding()
		return m, cmd
	case "esc":
		m.stopAdding()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *HeroesModel) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m *HeroesModel) View() string {
	content := m.list.View()
	if m.adding {
		content += "\n" + inputBar("Add hero", m.addErr, m.ti.View())
	}
	if m.status != "" {
		content += "\n" + errorStyle.Render(m.status)
	}
	return content
}

func (m *HeroesModel) selected() (HeroRow, bool) {
	row, ok := m.list.SelectedItem().(HeroRow)
	return row, ok
}

func (m *HeroesModel) syncRows() {
	rows := m.Rows()
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	m.list.SetItems(items)
}

func (m *HeroesModel) setSize(w, h int) {
	listHeight := h - 6
	if listHeight < 8 {
		listHeight = 8
	}
	m.list.SetSize(w-4, listHeight)
}
