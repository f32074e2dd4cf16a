package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"garage/internal/scheduling"
)

func newSegmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Inspect how estimates split into daily segments",
	}
	cmd.AddCommand(newSegmentsPreviewCmd(time.Now))
	return cmd
}

func newSegmentsPreviewCmd(clock scheduling.Clock) *cobra.Command {
	var (
		hours float64
		date  string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the segments an estimate would be split into",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var start *time.Time
			if date != "" {
				t, err := scheduling.ParseDate(date)
				if err != nil {
					return err
				}
				start = &t
			}
			segments, err := scheduling.NewSplitter(clock).Split(hours, start)
			if err != nil {
				return err
			}
			for i, seg := range segments {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%g\n", i+1, *seg.Date, seg.Duration)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&hours, "hours", 0, "estimated hours")
	cmd.Flags().StringVar(&date, "date", "", "start date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}
