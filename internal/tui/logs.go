package tui

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mood-tracker/internal/logging"
)

// debugLogFile receives debug and warning output while the board owns the terminal
const debugLogFile = "mt-debug.log"

// redirectLogs keeps log lines off the alternate screen. With debugging on
// they are appended to path, otherwise warnings are dropped.
func redirectLogs(path string) (restore func(), err error) {
	if !logging.DebugEnabled() {
		return logging.SetWarnOutput(io.Discard), nil
	}

	f, err := tea.LogToFile(path, "mt")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	restoreDebug := logging.SetDebugOutput(f)
	restoreWarn := logging.SetWarnOutput(f)
	return func() {
		restoreWarn()
		restoreDebug()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		f.Close()
	}, nil
}
