package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSymbolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the selectable symbols",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.symbols()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range list {
				fmt.Fprintln(w, s)
			}
			return nil
		},
	}
}
