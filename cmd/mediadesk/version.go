package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mediadesk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mediadesk %s\n", version)
		},
	}
}
