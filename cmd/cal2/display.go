package main

import (
	"github.com/spf13/cobra"
)

func displayCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Print the calendar",
		Long:  "Print the calendar with holidays, weekends and today highlighted. The quarter mode shows the previous, current and next month side by side.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(mode)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "q", "What to render: q (quarter), month or year")

	return cmd
}
