package main

import (
	"fmt"
	"os"

	"tablenest/cmd"
	"tablenest/internal/api"
	"tablenest/internal/session"
	"tablenest/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open the session store (the cookie jar of the web client)
	store, err := session.Open(config.SessionDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	creds, email, signedIn, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load session: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(config.ServerURL)

	// Create and run Bubble Tea app
	p := tea.NewProgram(ui.New(client, store, creds, email, signedIn), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
