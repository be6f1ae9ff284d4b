package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no hero exists for an id.
	ErrNotFound = errors.New("hero not found")
	// ErrEmptyName is returned when a hero is created or renamed with a blank name.
	ErrEmptyName = errors.New("hero name is empty")
	// ErrUnauthorized is returned when the API rejects the bearer token.
	ErrUnauthorized = errors.New("not authorized")
	// ErrUnavailable wraps transport failures and 5xx responses.
	ErrUnavailable = errors.New("hero service unavailable")
)

// Hero is the domain record served by the heroes API.
type Hero struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

// Link is the navigation target for the hero's detail view.
func (h Hero) Link() string {
	return fmt.Sprintf("/detail/%d", h.ID)
}

// Validate reports ErrEmptyName when the name is blank.
func (h Hero) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// IndexOf returns the position of the first hero with the same id, or -1.
func IndexOf(heroes []Hero, id int) int {
	for i, h := range heroes {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// Strongest returns at most n heroes ordered by strength, strongest first.
// Ties keep their input order.
func Strongest(heroes []Hero, n int) []Hero {
	out := append([]Hero(nil), heroes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Strength > out[j].Strength })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
