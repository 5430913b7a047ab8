package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <day> <month>",
		Short: "Mark a date as a custom holiday",
		Long:  "Mark a date as a custom holiday in the current year's cache. Already marked dates are left untouched.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, month, err := parseDayMonthArgs(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			return a.Add(day, month)
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <day> <month>",
		Short: "Remove a holiday from the current year's cache",
		Long:  "Remove a holiday from the current year's cache. Works on both custom and fetched entries; deleting an unmarked date does nothing.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, month, err := parseDayMonthArgs(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			return a.Delete(day, month)
		},
	}
}

func parseDayMonthArgs(args []string) (day, month int, err error) {
	day, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day %q", args[0])
	}

	month, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q", args[1])
	}

	return day, month, nil
}
