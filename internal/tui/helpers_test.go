package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/heroes/internal/model"
)

func heroesFixture() []model.Hero {
	return []model.Hero{
		{ID: 1, Name: "SpiderDude", Strength: 8},
		{ID: 2, Name: "Wonderful Woman", Strength: 24},
		{ID: 3, Name: "SuperDude", Strength: 55},
	}
}

// run executes cmd the way the runtime would and returns its messages,
// expanding one level of batching. Nil commands produce nothing.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c != nil {
				out = append(out, c())
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

// feed runs cmd and hands every resulting message to m.Update. Commands
// returned by Update are not run.
func feed(m tea.Model, cmd tea.Cmd) tea.Model {
	for _, msg := range run(cmd) {
		m, _ = m.Update(msg)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
