// Package tui holds the Bubble Tea views: the hero list, the hero detail
// editor, the dashboard, and the App shell that routes between them.
//
// Views never block on I/O. They return commands that call the HeroService
// and deliver the result back to Update, which is the only place view
// state changes.
package tui

//go:generate go run go.uber.org/mock/mockgen --source=services.go --destination=mock_services_test.go -package=tui HeroService,Navigator

import (
	"context"

	"github.com/Makepad-fr/heroes/internal/model"
)

// HeroService is what the views need from the remote hero service.
type HeroService interface {
	GetHeroes(ctx context.Context) ([]model.Hero, error)
	GetHero(ctx context.Context, id int) (model.Hero, error)
	SearchHeroes(ctx context.Context, term string) ([]model.Hero, error)
	AddHero(ctx context.Context, h model.Hero) (model.Hero, error)
	UpdateHero(ctx context.Context, h model.Hero) error
	DeleteHero(ctx context.Context, h model.Hero) error
}

// Navigator moves back to the previous view. Implementations may block
// until the program accepts the request, so call it from a command, never
// from Update.
type Navigator interface {
	Back()
}

// MessageLog is the notification log shown under the active view.
type MessageLog interface {
	Add(message string)
	Last(n int) []string
}

// Params is a read-only snapshot of route parameters.
type Params interface {
	Get(name string) string
}

// Snapshot is a Params backed by a map.
type Snapshot map[string]string

func (s Snapshot) Get(name string) string { return s[name] }

// NavigateMsg asks the App to open the view for Path.
type NavigateMsg struct {
	Path string
}

// BackMsg asks the App to return to the previous view.
type BackMsg struct{}

// DeleteRequestMsg is emitted by a HeroRow's delete affordance.
type DeleteRequestMsg struct {
	Hero model.Hero
}
