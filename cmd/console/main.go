package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
)

type ConsoleConfig struct {
	DefaultCipher ciphers.ID
}

func main() {
	cfg := &ConsoleConfig{
		DefaultCipher: ciphers.ID(getEnv("CONSOLE_CIPHER", string(ciphers.Caesar))),
	}
	if _, err := ciphers.Lookup(string(cfg.DefaultCipher)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid CONSOLE_CIPHER: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
