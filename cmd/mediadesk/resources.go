package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mediadesk/internal/catalog"
	"mediadesk/internal/store"
)

func newResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List managed resource types and seed counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New()
			if err := store.Seed(st); err != nil {
				return err
			}
			name := color.New(color.FgGreen).SprintFunc()
			for _, ns := range catalog.Resources() {
				fmt.Printf("%-18s %d seeded\n", name(ns), st.Count(ns))
			}
			return nil
		},
	}
}
