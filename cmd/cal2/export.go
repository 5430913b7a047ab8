package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current year's holidays as iCalendar",
		Long:  "Export the current year's holidays as an iCalendar document with one all-day event per holiday, suitable for importing into calendar applications.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if output == "" {
				return a.ExportICS(os.Stdout)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			return a.ExportICS(f)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
