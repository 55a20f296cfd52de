package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liquidbio/ctdna-lab/internal/sysinfo"
)

var memCmd = &cobra.Command{
	Use:   "mem",
	Short: "Print host memory usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := sysinfo.MemoryUsedPercent()
		if err != nil {
			return err
		}
		fmt.Printf("Memory Usage: %.1f%%\n", pct)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(memCmd)
}
