// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// pong-cli plays ft_transcendence pong in a terminal. It logs in
// through the web service's authentication API (locally with email and
// password, or remotely through the 42 OAuth flow in a browser) and
// plays over the game server's Socket.IO endpoint.
//
// Configuration comes from the YAML file named by --config or
// PONG_CLI_CONFIG; flags override it. While the game runs the terminal
// belongs to the UI: warnings appear in a status line at the bottom of
// the screen, and --log-file keeps every record as JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mxmxmx333/ft-transcendence/lib/app"
	"github.com/mxmxmx333/ft-transcendence/lib/clock"
	"github.com/mxmxmx333/ft-transcendence/lib/config"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
	"github.com/mxmxmx333/ft-transcendence/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flagValues holds the command-line overrides of the configuration.
type flagValues struct {
	configPath   string
	host         string
	environment  string
	keyboardMode string
	logFile      string
	color        string
}

func newFlagSet(values *flagValues) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("pong-cli", pflag.ContinueOnError)
	flagSet.StringVar(&values.configPath, "config", "", "path to the YAML config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&values.host, "host", "", "game server host shown on the host selection page")
	flagSet.StringVar(&values.environment, "environment", "", "server environment: development or production")
	flagSet.StringVar(&values.keyboardMode, "keyboard-mode", "", "paddle input: debounce or release")
	flagSet.StringVar(&values.logFile, "log-file", "", "write JSON log records to this file")
	flagSet.StringVar(&values.color, "color", "", "colour profile: auto, truecolor, ansi256, ansi or none")
	flagSet.Bool("version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet
}

func run(args []string) error {
	var values flagValues
	flagSet := newFlagSet(&values)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion, _ := flagSet.GetBool("version"); showVersion {
		fmt.Println("pong-cli " + version.Full())
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	logger := commandLogger()
	cfg, err := loadConfig(values.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, flagSet, values)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("configuration loaded",
		"environment", cfg.Environment,
		"host", cfg.Server.Host,
		"keyboard_mode", cfg.Input.KeyboardMode,
	)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("pong-cli needs an interactive terminal")
	}
	return play(cfg)
}

// loadConfig reads path, or the file named by the environment when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// applyFlags copies the flags the user set over cfg.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, values flagValues) {
	if flagSet.Changed("environment") {
		cfg.SetEnvironment(config.Environment(values.environment))
	}
	if flagSet.Changed("host") {
		cfg.Server.Host = values.host
	}
	if flagSet.Changed("keyboard-mode") {
		cfg.Input.KeyboardMode = config.KeyboardMode(values.keyboardMode)
	}
	if flagSet.Changed("log-file") {
		cfg.Logging.File = values.logFile
	}
	if flagSet.Changed("color") {
		cfg.Display.Color = values.color
	}
}

// play runs the UI until the player exits.
func play(cfg *config.Config) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	status := &tui.StatusLine{}
	var handler slog.Handler = tui.NewLogHandler(slog.LevelWarn, status)
	if cfg.Logging.File != "" {
		fileHandler, closeFile, err := openFileLogHandler(cfg.Logging.File, level)
		if err != nil {
			return fmt.Errorf("cannot open log file %s: %w", cfg.Logging.File, err)
		}
		defer closeFile()
		handler = fanoutHandler{handler, fileHandler}
	}
	logger := slog.New(handler)

	renderer, err := tui.NewRenderer(os.Stdout, cfg.Display.Color, logger)
	if err != nil {
		return err
	}

	// The browser helper echoes its child's output, which would land on
	// the alternate screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	program := tui.StartProgram(ctx, tui.ProgramOptions{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logger,
	})
	defer program.Close()

	application := app.New(app.Options{
		Config:   cfg,
		Terminal: program,
		Styles:   tui.NewStyles(tui.DefaultTheme, renderer),
		Status:   status,
		Clock:    clock.Real(),
		Logger:   logger,
	})
	runErr := application.Run(ctx)
	if err := program.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pong-cli: play ft_transcendence pong in the terminal.

Pick a host, log in (locally, or remotely through 42 in your browser),
then start a single player game, create or join a room, or play a
local match with both paddles on one keyboard.

Usage:
  pong-cli [flags]

Controls:
  w/s or arrows   move your paddle (local match: w/s left, arrows right)
  p or space      pause
  esc             leave the game or quit
  ctrl+c          quit from anywhere

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
