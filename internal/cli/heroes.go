package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/heroes/internal/auth"
	"github.com/Makepad-fr/heroes/internal/heroclient"
	"github.com/Makepad-fr/heroes/internal/model"
	"github.com/Makepad-fr/heroes/internal/tui"
	"github.com/Makepad-fr/heroes/internal/ui"
)

const (
	// strongAt splits --group output.
	strongAt = 30
	// barCeiling is the strength that fills a bar.
	barCeiling = 100
	topCount   = 4
	nameWidth  = 40
)

// -------------- subcommand impls ----------------

func (r *runner) doList(c *heroclient.Client) int {
	heroes, err := c.GetHeroes(context.Background())
	if err != nil {
		return r.fail("ls", err)
	}

	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d",
		ui.C(t.Title, "Heroes"),
		ui.C(t.Accent, "Total"), len(heroes),
		ui.C(t.Strong, "Avg strength"), average(heroes),
	)
	lines := []string{header, ""}
	if r.opt.Group {
		lines = append(lines, groupLines(heroes)...)
	} else {
		lines = append(lines, heroLines(heroes)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `heroes add \"Mr. Ice\" 40`"))
	ui.Panel(r.out, lines)
	return 0
}

func (r *runner) doShow(c *heroclient.Client, rawID string) int {
	id, code := r.parseID("show", rawID)
	if code != 0 {
		return code
	}
	h, err := c.GetHero(context.Background(), id)
	if err != nil {
		return r.fail("show", err)
	}
	ui.Panel(r.out, detailLines(h))
	return 0
}

func (r *runner) doAdd(c *heroclient.Client, a []string) int {
	h := model.Hero{Name: strings.TrimSpace(a[0])}
	if len(a) == 2 {
		n, err := strconv.Atoi(a[1])
		if err != nil || n < 0 {
			ui.Fail(r.errw, "add: strength must be a whole number: "+a[1])
			return 2
		}
		h.Strength = n
	}
	if err := h.Validate(); err != nil {
		ui.Fail(r.errw, "add: "+err.Error())
		return 2
	}
	created, err := c.AddHero(context.Background(), h)
	if err != nil {
		return r.fail("add", err)
	}
	ui.OK(r.out, fmt.Sprintf("added %s (id %d)", created.Name, created.ID))
	return 0
}

func (r *runner) doRemove(c *heroclient.Client, rawID string) int {
	id, code := r.parseID("rm", rawID)
	if code != 0 {
		return code
	}
	if err := c.DeleteHero(context.Background(), model.Hero{ID: id}); err != nil {
		return r.fail("rm", err)
	}
	ui.OK(r.out, fmt.Sprintf("removed hero %d", id))
	return 0
}

// stayNavigator counts Back calls; the CLI has no view to return to.
type stayNavigator struct{ backs int }

func (n *stayNavigator) Back() { n.backs++ }

// doRename drives the detail editor headless: load, rename, save and wait.
func (r *runner) doRename(c *heroclient.Client, rawID, name string) int {
	if _, code := r.parseID("rename", rawID); code != 0 {
		return code
	}
	if strings.TrimSpace(name) == "" {
		ui.Fail(r.errw, "rename: "+model.ErrEmptyName.Error())
		return 2
	}

	nav := &stayNavigator{}
	editor := tui.NewDetailModel(c, nav, tui.Snapshot{"id": rawID})
	editor.Update(editor.Init()())
	before, ok := editor.Hero()
	if !ok {
		ui.Fail(r.errw, "rename: "+editor.Status())
		return 1
	}

	editor.Rename(strings.TrimSpace(name))
	if err := editor.SaveAndWait(context.Background()); err != nil {
		return r.fail("rename", err)
	}
	after, _ := editor.Hero()
	ui.OK(r.out, fmt.Sprintf("renamed %s to %s", before.Name, after.Name))
	return 0
}

func (r *runner) doSearch(c *heroclient.Client, term string) int {
	if strings.TrimSpace(term) == "" {
		ui.Fail(r.errw, "search: empty term")
		return 2
	}
	heroes, err := c.SearchHeroes(context.Background(), term)
	if err != nil {
		return r.fail("search", err)
	}
	lines := []string{ui.C(ui.Current().Title, fmt.Sprintf("Heroes matching %q", term)), ""}
	lines = append(lines, heroLines(heroes)...)
	ui.Panel(r.out, lines)
	return 0
}

func (r *runner) doTop(c *heroclient.Client) int {
	heroes, err := c.GetHeroes(context.Background())
	if err != nil {
		return r.fail("top", err)
	}
	lines := []string{ui.C(ui.Current().Title, "Top Heroes"), ""}
	lines = append(lines, heroLines(model.Strongest(heroes, topCount))...)
	ui.Panel(r.out, lines)
	return 0
}

func (r *runner) parseID(op, raw string) (int, int) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		ui.Fail(r.errw, op+": not a number: "+raw)
		return 0, 2
	}
	return id, 0
}

// fail reports err and maps it to an exit code. A hint is printed for the
// errors a user can act on.
func (r *runner) fail(op string, err error) int {
	ui.Fail(r.errw, op+": "+err.Error())
	switch {
	case errors.Is(err, model.ErrEmptyName):
		return 2
	case errors.Is(err, model.ErrUnauthorized):
		fmt.Fprintln(r.errw, ui.Dim("Hint: run `heroes auth login` or set "+auth.EnvToken))
	case errors.Is(err, model.ErrNotFound):
		fmt.Fprintln(r.errw, ui.Dim("Hint: run `heroes ls` to see valid ids"))
	case errors.Is(err, model.ErrUnavailable):
		fmt.Fprintln(r.errw, ui.Dim("Hint: is the API running at "+r.cfg.APIURL+"? Try `heroes serve`"))
	}
	return 1
}

// -------------- rendering helpers --------------

func average(heroes []model.Hero) int {
	if len(heroes) == 0 {
		return 0
	}
	sum := 0
	for _, h := range heroes {
		sum += h.Strength
	}
	return sum / len(heroes)
}

func heroLines(heroes []model.Hero) []string {
	t := ui.Current()
	if len(heroes) == 0 {
		return []string{ui.C(t.Muted, "no heroes")}
	}
	out := make([]string, 0, len(heroes))
	for _, h := range heroes {
		out = append(out, fmt.Sprintf("%s %s %s %3d",
			ui.Dim(fmt.Sprintf("%4d", h.ID)),
			nameColumn(h.Name),
			ui.C(t.Strong, ui.StrengthBar(h.Strength, barCeiling, 20)),
			h.Strength,
		))
	}
	return out
}

// nameColumn fits name to nameWidth terminal cells, cutting on rune
// boundaries.
func nameColumn(name string) string {
	return runewidth.FillRight(runewidth.Truncate(name, nameWidth, "..."), nameWidth)
}

func groupLines(heroes []model.Hero) []string {
	var strong, weak []model.Hero
	for _, h := range heroes {
		if h.Strength >= strongAt {
			strong = append(strong, h)
		} else {
			weak = append(weak, h)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Strong"))
	if len(strong) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, heroLines(strong)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Weak"))
	if len(weak) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, heroLines(weak)...)
	}
	return lines
}

func detailLines(h model.Hero) []string {
	t := ui.Current()
	return []string{
		ui.C(t.Title, strings.ToUpper(h.Name)+" Details"),
		"",
		fmt.Sprintf("%s %d", ui.C(t.Muted, "id:      "), h.ID),
		fmt.Sprintf("%s %s", ui.C(t.Muted, "name:    "), h.Name),
		fmt.Sprintf("%s %s %d", ui.C(t.Muted, "strength:"), ui.C(t.Strong, ui.StrengthBar(h.Strength, barCeiling, 20)), h.Strength),
		ui.C(t.Muted, "link:     "+h.Link()),
	}
}
