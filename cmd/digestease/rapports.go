package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"digestease/internal/models"
)

func newRapportsCmd(state *cliState) *cobra.Command {
	rapportsCmd := &cobra.Command{
		Use:   "rapports",
		Short: "List and generate rapports",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all rapports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.session.Activate(cmd.Context()); err != nil {
				return err
			}
			printRapports(cmd.OutOrStdout(), state.session.Rapports.List())
			return nil
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new rapport from recent logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := state.session
			if err := session.Activate(cmd.Context()); err != nil {
				return err
			}
			rapport, err := session.Generate(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printRapports(out, []models.Rapport{rapport})
			fmt.Fprintf(out, "%d rapport(s) total\n", session.Rapports.Len())
			return nil
		},
	}

	rapportsCmd.AddCommand(listCmd, generateCmd)
	return rapportsCmd
}

func printRapports(out io.Writer, rapports []models.Rapport) {
	if len(rapports) == 0 {
		fmt.Fprintln(out, "No rapports yet")
		return
	}
	for _, r := range rapports {
		fmt.Fprintf(out, "[%s] %s\n%s\n\n", r.Date, r.ID, r.Result)
	}
}
