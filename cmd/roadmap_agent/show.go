package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-roadmap/internal/artifact"
	"github.com/jonathan/interview-roadmap/internal/observability"
)

var showCmd = &cobra.Command{
	Use:   "show <roadmap.json>",
	Short: "Print the summary of a saved roadmap",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	record, err := artifact.Load(args[0])
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRoadmap(&record, observability.RoadmapSummary{Path: args[0]})
	return nil
}
