package cli

import (
	"bufio"
	"fmt"
	"time"

	"github.com/Makepad-fr/heroes/internal/auth"
	"github.com/Makepad-fr/heroes/internal/ui"
)

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func (r *runner) store() (*auth.Store, int) {
	s, err := auth.DefaultStore()
	if err != nil {
		ui.Fail(r.errw, "credentials: "+err.Error())
		return nil, 1
	}
	return s, 0
}

// doAuthLogin saves the token the API was started with (`serve --token`).
func (r *runner) doAuthLogin() int {
	s, code := r.store()
	if code != 0 {
		return code
	}
	fmt.Fprint(r.out, "Paste your token: ")
	line, err := bufio.NewReader(r.opt.Stdin).ReadString('\n')
	token := auth.TrimScheme(line)
	fmt.Fprintln(r.out)
	if token == "" {
		if err != nil {
			ui.Fail(r.errw, "read token: "+err.Error())
		} else {
			ui.Fail(r.errw, "read token: empty token")
		}
		return 1
	}
	if err := s.Save(token, nil); err != nil {
		ui.Fail(r.errw, "save token: "+err.Error())
		return 1
	}
	ui.OK(r.out, "logged in, token saved to "+s.Path())
	return 0
}

func (r *runner) doAuthLogout() int {
	s, code := r.store()
	if code != 0 {
		return code
	}
	if c, _ := s.Load(); c.FromEnv() {
		ui.OK(r.out, "token is provided by "+auth.EnvToken+" env var (nothing to delete)")
		return 0
	}
	if err := s.Clear(); err != nil {
		ui.Fail(r.errw, "logout: "+err.Error())
		return 1
	}
	ui.OK(r.out, "logged out")
	return 0
}

func (r *runner) doAuthStatus() int {
	s, code := r.store()
	if code != 0 {
		return code
	}
	c, err := s.Load()
	if err != nil {
		ui.Fail(r.errw, "status: "+err.Error())
		return 1
	}
	if c == nil {
		fmt.Fprintln(r.out, ui.Dim("not logged in"))
		fmt.Fprintln(r.out, "Run: heroes auth login")
		return 0
	}
	if c.FromEnv() {
		fmt.Fprintln(r.out, "source: "+auth.EnvToken)
	} else {
		fmt.Fprintln(r.out, "source: "+c.Source)
		fmt.Fprintln(r.out, "saved: "+c.SavedAt.Format(time.RFC3339))
	}
	switch {
	case c.ExpiresAt == nil:
		fmt.Fprintln(r.out, "expires: (never)")
	case c.Expired(time.Now()):
		fmt.Fprintf(r.out, "expires: %s %s\n", c.ExpiresAt.UTC().Format(time.RFC3339), ui.C(ui.Current().Error, "(expired)"))
	default:
		fmt.Fprintf(r.out, "expires: %s\n", c.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return 0
}
