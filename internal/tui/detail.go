package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/heroes/internal/model"
	"github.com/Makepad-fr/heroes/internal/ui"
)

// saveDelay lets a burst of edits settle before Save writes.
const saveDelay = 250 * time.Millisecond

// ErrNoHero is returned when saving before the hero has loaded.
var ErrNoHero = errors.New("no hero loaded")

type (
	heroLoadedMsg struct {
		hero model.Hero
		err  error
	}
	heroSavedMsg struct {
		hero model.Hero
		err  error
	}
)

// DetailModel shows and edits one hero. The id comes from the route
// snapshot taken at construction and never changes afterwards.
type DetailModel struct {
	svc HeroService
	nav Navigator
	id  string

	hero   *model.Hero
	name   textinput.Model
	status string
}

func NewDetailModel(svc HeroService, nav Navigator, params Params) *DetailModel {
	ti := textinput.New()
	ti.Prompt = "name: "
	ti.Placeholder = "Hero name..."
	ti.CharLimit = 100
	return &DetailModel{
		svc:  svc,
		nav:  nav,
		id:   params.Get("id"),
		name: ti,
	}
}

// Init fetches the hero named by the route id.
func (m *DetailModel) Init() tea.Cmd {
	raw := m.id
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return func() tea.Msg {
			return heroLoadedMsg{err: fmt.Errorf("invalid hero id %q", raw)}
		}
	}
	svc := m.svc
	return func() tea.Msg {
		h, err := svc.GetHero(context.Background(), id)
		return heroLoadedMsg{hero: h, err: err}
	}
}

// Hero returns the local hero state.
func (m *DetailModel) Hero() (model.Hero, bool) {
	if m.hero == nil {
		return model.Hero{}, false
	}
	return *m.hero, true
}

// Status is the last load or save error shown by the view, if any.
func (m *DetailModel) Status() string { return m.status }

// Rename edits the local hero's name without saving it.
func (m *DetailModel) Rename(name string) {
	if m.hero == nil {
		return
	}
	m.hero.Name = name
	m.name.SetValue(name)
}

// Save updates the hero and navigates back once the update has succeeded.
// The update runs in the returned command, saveDelay after it starts, with
// the hero as it was when Save was called.
func (m *DetailModel) Save() tea.Cmd {
	if m.hero == nil {
		return nil
	}
	h := *m.hero
	return tea.Tick(saveDelay, func(time.Time) tea.Msg {
		return heroSavedMsg{hero: h, err: m.commit(context.Background(), h)}
	})
}

// SaveAndWait is Save for callers outside the Bubble Tea loop: it blocks
// until the update settles and has navigated back.
func (m *DetailModel) SaveAndWait(ctx context.Context) error {
	if m.hero == nil {
		return ErrNoHero
	}
	return m.commit(ctx, *m.hero)
}

// commit is the single save path. Back is called at most once, and only
// after UpdateHero has returned without error.
func (m *DetailModel) commit(ctx context.Context, h model.Hero) error {
	if err := m.svc.UpdateHero(ctx, h); err != nil {
		return err
	}
	m.nav.Back()
	return nil
}

func (m *DetailModel) goBack() tea.Cmd {
	nav := m.nav
	return func() tea.Msg {
		nav.Back()
		return nil
	}
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case heroLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		h := msg.hero
		m.hero = &h
		m.status = ""
		m.name.SetValue(h.Name)
		m.name.CursorEnd()
		return m, m.name.Focus()

	case heroSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, m.goBack()
		case "enter":
			return m, m.Save()
		}
		if m.hero == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.hero.Name = m.name.Value()
		return m, cmd
	}
	// cursor blink
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m *DetailModel) View() string {
	if m.hero == nil {
		if m.status != "" {
			return errorStyle.Render(m.status) + "\n\n" + helpStyle.Render("esc back")
		}
		return mutedStyle.Render("Loading hero " + m.id + "...")
	}
	h := m.hero
	lines := []string{
		titleStyle.Render(strings.ToUpper(h.Name) + " Details"),
		"",
		fmt.Sprintf("id: %d", h.ID),
		m.name.View(),
		fmt.Sprintf("strength: %s %d", strongStyle.Render(ui.StrengthBar(h.Strength, 100, 20)), h.Strength),
		"",
		helpStyle.Render("enter save • esc back"),
	}
	if m.status != "" {
		lines = append(lines, errorStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}
