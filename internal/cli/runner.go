package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log/level"

	"github.com/Makepad-fr/heroes/internal/auth"
	"github.com/Makepad-fr/heroes/internal/config"
	"github.com/Makepad-fr/heroes/internal/heroclient"
	"github.com/Makepad-fr/heroes/internal/logging"
	"github.com/Makepad-fr/heroes/internal/messages"
	"github.com/Makepad-fr/heroes/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list split into strong/weak

	// Empty values fall back to the config file and environment.
	ConfigPath string
	APIURL     string
	Theme      string
	LogLevel   string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// runner carries what every subcommand needs once flags and config are
// resolved.
type runner struct {
	opt    Options
	cfg    config.Config
	out    io.Writer
	errw   io.Writer
	logger logging.Logger
	msgs   *messages.Service
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}

	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		ui.Fail(opt.Stderr, "config: "+err.Error())
		return 2
	}
	if opt.APIURL != "" {
		cfg.APIURL = opt.APIURL
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	if opt.LogLevel != "" {
		cfg.LogLevel = opt.LogLevel
	}
	ui.SetTheme(cfg.Theme)

	logger := logging.New(opt.Stderr, cfg.LogFormat, cfg.LogLevel)
	r := &runner{
		opt:    opt,
		cfg:    cfg,
		out:    opt.Stdout,
		errw:   opt.Stderr,
		logger: logger,
		msgs:   messages.New(logger),
	}

	cmd, a := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return 0
	case "ls":
		return r.withClient(func(c *heroclient.Client) int { return r.doList(c) })
	case "show":
		if len(a) != 1 {
			return r.usage("heroes show <id>")
		}
		return r.withClient(func(c *heroclient.Client) int { return r.doShow(c, a[0]) })
	case "add":
		if len(a) < 1 || len(a) > 2 {
			return r.usage("heroes add <name> [strength]")
		}
		return r.withClient(func(c *heroclient.Client) int { return r.doAdd(c, a) })
	case "rm":
		if len(a) != 1 {
			return r.usage("heroes rm <id>")
		}
		return r.withClient(func(c *heroclient.Client) int { return r.doRemove(c, a[0]) })
	case "rename":
		if len(a) < 2 {
			return r.usage("heroes rename <id> <name...>")
		}
		return r.withClient(func(c *heroclient.Client) int { return r.doRename(c, a[0], strings.Join(a[1:], " ")) })
	case "search":
		if len(a) == 0 {
			return r.usage("heroes search <term...>")
		}
		return r.withClient(func(c *heroclient.Client) int { return r.doSearch(c, strings.Join(a, " ")) })
	case "top":
		return r.withClient(func(c *heroclient.Client) int { return r.doTop(c) })
	case "tui":
		return r.doTUI()
	case "serve":
		return r.doServe(a)
	case "auth":
		if len(a) != 1 {
			return r.usage("heroes auth <login|logout|status>")
		}
		switch a[0] {
		case "login":
			return r.doAuthLogin()
		case "logout":
			return r.doAuthLogout()
		case "status":
			return r.doAuthStatus()
		}
		return r.usage("heroes auth <login|logout|status>")
	}

	ui.Fail(r.errw, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.errw)
	PrintHelp(r.errw)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `heroes - manage the hero roster

Usage:
  heroes [flags] <subcommand> [args]

Flags:
  --config <file>    YAML or TOML config file (or $HEROES_CONFIG)
  --api <url>        API base URL (or $HEROES_API_URL)
  --theme <name>     classic, neon or mono
  --log-level <lvl>  debug, info, warn or error
  --group            split ls output into strong/weak

Subcommands:
  ls                       List heroes
  show <id>                Show one hero
  add <name> [strength]    Add a hero
  rm <id>                  Delete a hero
  rename <id> <name...>    Rename a hero
  search <term...>         Find heroes by name
  top                      Show the strongest heroes
  tui                      Interactive dashboard, list and editor
  serve [--listen addr] [--data file | --memory] [--token t]
                           Serve the heroes API (data defaults to ./heroes.json)
  auth <login|logout|status>
                           Manage the API token

Examples:
  heroes serve --data heroes.json
  heroes add "Mr. Ice" 40
  heroes rename 12 "Dr. Nicer"
  heroes --group ls
`)
}

func (r *runner) usage(line string) int {
	ui.Fail(r.errw, "usage: "+line)
	return 2
}

// newClient builds the API client from config and the stored token.
func (r *runner) newClient() (*heroclient.Client, error) {
	opts := []heroclient.Option{
		heroclient.WithLogger(r.logger),
		heroclient.WithMessages(r.msgs),
		heroclient.WithTimeout(r.cfg.Timeout()),
	}
	creds, err := r.credentials()
	if err != nil {
		level.Warn(r.logger).Log("msg", "ignoring stored token", "err", err)
	}
	if creds != nil {
		if creds.Expired(time.Now()) {
			level.Warn(r.logger).Log("msg", "stored token has expired", "source", creds.Source)
		}
		opts = append(opts, heroclient.WithToken(creds.Token))
	}
	return heroclient.New(r.cfg.APIURL, opts...)
}

func (r *runner) credentials() (*auth.Credentials, error) {
	store, err := auth.DefaultStore()
	if err != nil {
		return nil, err
	}
	return store.Load()
}

func (r *runner) withClient(fn func(c *heroclient.Client) int) int {
	c, err := r.newClient()
	if err != nil {
		ui.Fail(r.errw, "client: "+err.Error())
		return 2
	}
	return fn(c)
}
