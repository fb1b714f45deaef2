package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/glitchwave/internal/config"
	"github.com/olivier-w/glitchwave/internal/ui"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	closeLog, err := setupLogging(cfg.DebugLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, os.Args[1:])
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, args []string) error {
	arg, err := parseArgs(args)
	if err != nil {
		return err
	}
	if arg != "" {
		if err := validateArg(arg); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources := &sourceHolder{}
	defer func() {
		if err := sources.Close(); err != nil {
			log.Printf("closing source: %v", err)
		}
	}()

	log.Printf("starting: size=%dx%d seed=%d mute=%v loop=%v", cfg.Width, cfg.Height, cfg.Seed, cfg.Mute, cfg.Loop)
	program := tea.NewProgram(
		newStartupModel(ctx, cfg, arg, sources),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}

	switch m := final.(type) {
	case ui.Model:
		return m.Err()
	case startupModel:
		return m.err
	}
	return nil
}

// parseArgs accepts at most one positional argument: an audio file or
// playlist. No argument means the microphone.
func parseArgs(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("usage: glitchwave [audio file or playlist]")
}

// setupLogging sends the std logger to path, or discards it so the alt
// screen stays clean.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "glitchwave")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	return func() { f.Close() }, nil
}
