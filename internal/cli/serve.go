package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log/level"

	"github.com/Makepad-fr/heroes/internal/config"
	"github.com/Makepad-fr/heroes/internal/heroapi"
	"github.com/Makepad-fr/heroes/internal/logging"
	"github.com/Makepad-fr/heroes/internal/store/jsonstore"
	"github.com/Makepad-fr/heroes/internal/tui"
	"github.com/Makepad-fr/heroes/internal/ui"
)

// serveFlags are the options of `heroes serve`.
type serveFlags struct {
	listen string
	data   string
	memory bool
	token  string
}

func (r *runner) parseServe(args []string) (serveFlags, error) {
	var f serveFlags
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(r.errw)
	fs.StringVar(&f.listen, "listen", r.cfg.Listen, "address to listen on")
	fs.StringVar(&f.data, "data", r.cfg.DataFile, "JSON file the roster is loaded from and saved to (default ./"+jsonstore.FileName+")")
	fs.BoolVar(&f.memory, "memory", false, "keep the roster in memory only")
	fs.StringVar(&f.token, "token", r.cfg.ServerToken, "bearer token clients must send (or $"+config.EnvServerToken+")")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		return f, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if f.memory {
		f.data = ""
	} else if f.data == "" {
		p, err := jsonstore.DefaultPath()
		if err != nil {
			return f, err
		}
		f.data = p
	}
	return f, nil
}

// newServer builds the API server serve would run.
func (r *runner) newServer(f serveFlags) (*heroapi.Server, error) {
	opts := []heroapi.Option{heroapi.WithLogger(r.logger), heroapi.WithToken(f.token)}
	if f.data != "" {
		opts = append(opts, heroapi.WithDataFile(f.data))
	}
	return heroapi.New(opts...)
}

// doServe runs the heroes API until SIGINT or SIGTERM.
func (r *runner) doServe(args []string) int {
	f, err := r.parseServe(args)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			ui.Fail(r.errw, "serve: "+err.Error())
		}
		return 2
	}
	srv, err := r.newServer(f)
	if err != nil {
		ui.Fail(r.errw, "serve: "+err.Error())
		return 1
	}
	if f.token == "" {
		level.Warn(r.logger).Log("msg", "no token set, the API is open to anyone who can reach it")
	}
	level.Info(r.logger).Log("msg", "serving", "data", f.data)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx, f.listen); err != nil {
		ui.Fail(r.errw, "serve: "+err.Error())
		return 1
	}
	level.Info(r.logger).Log("msg", "stopped")
	return 0
}

// doTUI runs the interactive app. Logs go to the configured log file, never
// to the terminal the app draws on.
func (r *runner) doTUI() int {
	var w io.Writer = io.Discard
	if r.cfg.LogFile != "" {
		f, err := os.OpenFile(r.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			ui.Fail(r.errw, "log file: "+err.Error())
			return 1
		}
		defer f.Close()
		w = f
	}
	r.logger = logging.New(w, r.cfg.LogFormat, r.cfg.LogLevel)

	c, err := r.newClient()
	if err != nil {
		ui.Fail(r.errw, "client: "+err.Error())
		return 2
	}
	router := &tui.Router{}
	app := tui.NewApp(c, router, r.msgs, r.cfg.StartView)
	if err := tui.Run(app, router); err != nil {
		ui.Fail(r.errw, "tui: "+err.Error())
		return 1
	}
	fmt.Fprintln(r.out, ui.Dim(fmt.Sprintf("%d messages this session", len(r.msgs.Messages()))))
	return 0
}
