// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("reelmatch", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "path to a YAML config file (overrides CONFIG_PATH)")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if global.NArg() == 0 {
		usage(stderr, global)
		return 2
	}

	cmd, ok := findCommand(global.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", global.Arg(0))
		usage(stderr, global)
		return 2
	}

	if *configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, *configPath); err != nil {
			fmt.Fprintf(stderr, "set config path: %v\n", err)
			return 1
		}
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	closeLog, err := setupLogging(cfg, cmd.name)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer closeLog()

	a := &app{cfg: cfg, stdin: stdin, stdout: stdout, logger: logging.WithComponent(cmd.name)}
	err = cmd.run(ctx, a, global.Args()[1:])

	if path := cfg.Paths.MetricsFile; path != "" {
		if merr := metrics.WriteTextfile(path); merr != nil {
			logging.Warn().Err(merr).Str("path", path).Msg("Failed to write metrics textfile")
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		logging.Error().Err(err).Str("command", cmd.name).Msg("Command failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func usage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: reelmatch [-config FILE] <command> [flags]")
	fmt.Fprintln(w, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-18s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	global.PrintDefaults()
	fmt.Fprintln(w, "\nRun 'reelmatch <command> -h' for command flags.")
}
