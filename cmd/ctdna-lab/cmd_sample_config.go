package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liquidbio/ctdna-lab/internal/config"
)

var sampleConfigCmd = &cobra.Command{
	Use:   "sample-config [path]",
	Short: "Write the default settings file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Sample()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Print(string(data))
			return nil
		}

		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write sample config: %w", err)
		}
		fmt.Printf("Wrote sample config to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleConfigCmd)
}
