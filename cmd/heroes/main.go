package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/heroes/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "YAML or TOML config file")
	apiURL := flag.String("api", "", "API base URL")
	theme := flag.String("theme", "", "classic, neon or mono")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	group := flag.Bool("group", false, "split ls output into strong/weak")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:      *group,
		ConfigPath: *configPath,
		APIURL:     *apiURL,
		Theme:      *theme,
		LogLevel:   *logLevel,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
