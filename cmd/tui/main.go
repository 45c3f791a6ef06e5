package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tareas/internal/config"
	"tareas/internal/tui"
	"tareas/pkg/tasklist"
)

func main() {
	var apiBase string

	cmd := &cobra.Command{
		Use:          "tareas",
		Short:        "Manage tasks from the terminal",
		Long:         "tareas talks to a running tareas-server (API_BASE, default http://localhost:3000/).",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := &config.Overrides{}
			if cmd.Flags().Changed("api") {
				o.APIBase = &apiBase
			}
			cfg, err := config.LoadWithOverrides(o)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// The alt screen owns the terminal; logs go to TAREAS_LOG or nowhere.
			if path := os.Getenv("TAREAS_LOG"); path != "" {
				f, err := tea.LogToFile(path, "tareas")
				if err != nil {
					return fmt.Errorf("open log: %w", err)
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			notices := make(tui.Notices, 8)
			p := tasklist.New(tasklist.NewClient(cfg.Client.APIBase, nil), notices)
			program := tea.NewProgram(tui.New(p, notices), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&apiBase, "api", "", "base URL of the tareas server")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tareas failed: %v\n", err)
		os.Exit(1)
	}
}
