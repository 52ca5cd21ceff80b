package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/mortgo/internal/cache"
	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/domain"
	"github.com/rgehrsitz/mortgo/internal/tui"
)

func main() {
	var scenarios []domain.LoanInput
	if len(os.Args) > 1 {
		configPath := os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: scenario file not found: %s\n", configPath)
			os.Exit(1)
		}

		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		scenarios = cfg.Scenarios
	}

	engine := calculation.NewEngine()
	engine.SetCache(cache.NewMemoryCache(cache.DefaultTTL))

	p := tea.NewProgram(
		tui.NewModel(engine, scenarios),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
