// Package logging points the standard logger at a debug file.
package logging

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// Setup routes log output away from the terminal, which the TUI draws on.
// An empty filename silences logging; otherwise everything logged through
// the standard logger, Bubble Tea included, is appended to the file. The
// returned cleanup closes it.
func Setup(filename string) (cleanup func(), err error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if filename == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	// LogToFile also points the standard logger at the file.
	f, err := tea.LogToFile(filename, "latentmap")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
