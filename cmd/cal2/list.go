package main

import (
	"github.com/spf13/cobra"

	"github.com/Nassty/cal2/internal/app"
)

func listCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the current year's holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			return a.List(f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or markdown")

	return cmd
}
