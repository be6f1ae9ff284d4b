package tui

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	PathDashboard = "/dashboard"
	PathHeroes    = "/heroes"
	detailPrefix  = "/detail/"

	shownMessages = 4
)

// Router is the Navigator handed to views. It posts navigation requests
// into the running program, so it must be called from commands only.
type Router struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// Attach wires the router to a program's Send.
func (r *Router) Attach(send func(tea.Msg)) {
	r.mu.Lock()
	r.send = send
	r.mu.Unlock()
}

func (r *Router) Back() { r.post(BackMsg{}) }

func (r *Router) Navigate(path string) { r.post(NavigateMsg{Path: path}) }

func (r *Router) post(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// App is the root model: a stack of views plus the message panel.
type App struct {
	svc    HeroService
	nav    Navigator
	log    MessageLog
	start  string
	stack  []tea.Model
	width  int
	height int
}

func NewApp(svc HeroService, nav Navigator, log MessageLog, start string) *App {
	if start == "" {
		start = PathDashboard
	}
	w, h := widthHeight()
	return &App{svc: svc, nav: nav, log: log, start: start, width: w, height: h}
}

// Active is the view on top of the stack, or nil before Init.
func (a *App) Active() tea.Model {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

// Depth is the number of stacked views.
func (a *App) Depth() int { return len(a.stack) }

func (a *App) Init() tea.Cmd {
	v, err := a.resolve(a.start)
	if err != nil {
		a.log.Add(err.Error())
		v = NewDashboardModel(a.svc)
	}
	a.stack = []tea.Model{v}
	return a.enter(v)
}

// resolve maps a path to a fresh view.
func (a *App) resolve(path string) (tea.Model, error) {
	switch {
	case path == PathDashboard:
		return NewDashboardModel(a.svc), nil
	case path == PathHeroes:
		return NewHeroesModel(a.svc), nil
	case strings.HasPrefix(path, detailPrefix):
		id := strings.TrimPrefix(path, detailPrefix)
		if id == "" || strings.Contains(id, "/") {
			break
		}
		return NewDetailModel(a.svc, a.nav, Snapshot{"id": id}), nil
	}
	return nil, fmt.Errorf("no view for %q", path)
}

// enter sizes v and returns its Init.
func (a *App) enter(v tea.Model) tea.Cmd {
	if a.width > 0 && a.height > 0 {
		nv, _ := v.Update(a.innerSize())
		a.stack[len(a.stack)-1] = nv
		v = nv
	}
	return v.Init()
}

// innerSize leaves room for the message panel.
func (a *App) innerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.height - shownMessages - 2}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab":
			if len(a.stack) == 1 {
				next := PathHeroes
				if _, ok := a.Active().(*HeroesModel); ok {
					next = PathDashboard
				}
				v, _ := a.resolve(next)
				a.stack[0] = v
				return a, a.enter(v)
			}
		}

	case NavigateMsg:
		v, err := a.resolve(msg.Path)
		if err != nil {
			a.log.Add(err.Error())
			return a, nil
		}
		a.stack = append(a.stack, v)
		return a, a.enter(v)

	case BackMsg:
		if len(a.stack) <= 1 {
			return a, nil
		}
		a.stack = a.stack[:len(a.stack)-1]
		// refresh what was underneath
		return a, a.Active().Init()

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		inner := a.innerSize()
		var cmds []tea.Cmd
		for i, v := range a.stack {
			nv, cmd := v.Update(inner)
			a.stack[i] = nv
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	active := a.Active()
	if active == nil {
		return a, nil
	}
	nv, cmd := active.Update(msg)
	a.stack[len(a.stack)-1] = nv
	return a, cmd
}

func (a *App) View() string {
	active := a.Active()
	if active == nil {
		return ""
	}
	var notes []string
	for _, m := range a.log.Last(shownMessages) {
		notes = append(notes, mutedStyle.Render("• "+m))
	}
	if len(notes) == 0 {
		return panelString(active.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		panelString(active.View()),
		successStyle.Render("Messages"),
		strings.Join(notes, "\n"),
	)
}

// Run starts the program and blocks until it quits.
func Run(app *App, router *Router, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(app, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	router.Attach(p.Send)
	_, err := p.Run()
	return err
}
