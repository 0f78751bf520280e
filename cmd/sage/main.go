// Command sage runs the terminal analytics dashboard. It needs a running
// sage-server (or any backend speaking the same HTTP contract) to talk to.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sage/internal/app"
	"sage/internal/backend"
	"sage/internal/config"
	"sage/internal/logger"
)

func main() {
	cfg := config.LoadDashboard()

	backendURL := flag.String("backend", cfg.BackendURL, "analytics backend base URL")
	flag.Parse()

	log, err := logger.NewFile(cfg.DebugLog, "debug")
	if err != nil {
		fmt.Fprintln(os.Stderr, "open debug log:", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := backend.NewClient(*backendURL)
	program := tea.NewProgram(app.New(client, log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
