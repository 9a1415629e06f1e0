package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JakobGM/quelf/internal/adapters/cachefile"
	"github.com/JakobGM/quelf/internal/adapters/sleepcycle"
	"github.com/JakobGM/quelf/internal/adapters/tui"
	"github.com/JakobGM/quelf/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := cachefile.Load(cfg.CachePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	source := sleepcycle.New(cfg.SleepCycle.Email, cfg.SleepCycle.Password)

	app := tui.NewApp(store, source)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
