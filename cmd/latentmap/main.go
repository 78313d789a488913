package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"latentmap/internal/config"
	"latentmap/internal/logging"
	"latentmap/internal/tui"
)

var version = "dev"

const defaultConfigPath = "latentmap.toml"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, sets up logging and config, and runs the program until
// it quits. Deferred cleanup always runs before it returns.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("latentmap", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "path to TOML config file")
	source := fs.String("source", "", "CSV file path or http(s) URL to load (overrides config)")
	exportDir := fs.String("export-dir", "", "directory for selection exports (overrides config)")
	debugLog := fs.String("debug", "", "write debug log to this file")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, "latentmap", version)
		return nil
	}

	cleanup, err := logging.Setup(*debugLog)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer cleanup()

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	cfg, err := config.Load(*configPath)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrFileNotFound) && !explicit:
		log.Printf("config: %s not found, using defaults", *configPath)
	default:
		log.Printf("config: %v", err)
		return err
	}
	if fs.NArg() > 0 && *source == "" {
		*source = fs.Arg(0)
	}
	if *source != "" {
		cfg.Source.Location = *source
	}
	if *exportDir != "" {
		cfg.Export.Dir = *exportDir
	}

	p := tea.NewProgram(tui.New(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.Printf("fatal: %v", err)
		return err
	}
	return nil
}
