package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/liquidbio/ctdna-lab/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive single-page dashboard",
	Long: `Opens the full-screen TUI: threshold sliders, summary metric cards,
a VAF vs signal-to-noise scatter, QC trend panels, and an expandable
variant detail list. All recomputation happens on keypress; the variant
dataset itself never changes within a session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		p := tea.NewProgram(dashboard.New(cfg), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
