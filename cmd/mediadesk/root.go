package main

import (
	"github.com/spf13/cobra"

	"mediadesk/internal/logging"
)

var (
	configPath string
	debug      bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mediadesk",
		Short: "Media production catalog server and editing tools",
		Long: "mediadesk serves the media production catalog API (articles, equipment,\n" +
			"facilities, broadcast units, services, solutions, staff, settings) with\n" +
			"autocomplete search and a streaming text generation endpoint.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logging.SetDefaultLevel(logging.DEBUG)
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Debug logging")

	root.AddCommand(newServeCommand())
	root.AddCommand(newResourcesCommand())
	root.AddCommand(newVersionCommand())
	return root
}
