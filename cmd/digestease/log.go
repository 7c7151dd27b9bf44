package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"digestease/internal/models"
)

type logFlags struct {
	date    string
	bowel   string
	stress  int
	alcohol bool
	pain    bool
	nausea  bool
	food    []string
}

func newLogCmd(state *cliState) *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Manage daily logs",
	}

	flags := &logFlags{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a daily log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogAdd(cmd, state, flags)
		},
	}
	addCmd.Flags().StringVar(&flags.date, "date", "", "Log date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&flags.bowel, "bowel", "", "Bowel movements: Bloated, Normal or Diarrhea")
	addCmd.Flags().IntVar(&flags.stress, "stress", models.DefaultStress, "Stress level 1-10")
	addCmd.Flags().BoolVar(&flags.alcohol, "alcohol", false, "Drank alcohol")
	addCmd.Flags().BoolVar(&flags.pain, "pain", false, "Had pain")
	addCmd.Flags().BoolVar(&flags.nausea, "nausea", false, "Had nausea")
	addCmd.Flags().StringArrayVar(&flags.food, "food", nil, "Food item eaten (repeatable)")

	logCmd.AddCommand(addCmd)
	return logCmd
}

func runLogAdd(cmd *cobra.Command, state *cliState, flags *logFlags) error {
	session := state.session
	out := cmd.OutOrStdout()

	bowel, ok := models.ParseBowelMovement(flags.bowel)
	if !ok {
		bowel = models.BowelMovement(flags.bowel)
	}

	session.Edit(func(entry *models.LogEntry) {
		entry.Date = flags.date
		entry.BowelMovements = bowel
		entry.Stress = flags.stress
		entry.Alcohol = flags.alcohol
		entry.Pain = flags.pain
		entry.Nausea = flags.nausea
	})
	for _, item := range flags.food {
		session.AddFood(item)
	}

	err := session.Submit(cmd.Context())

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		printFieldErrors(out, session.Submission.Errors())
		return errors.New("log not submitted")
	case err != nil:
		return fmt.Errorf("log submission failed: %w", err)
	}

	if session.Submission.Succeeded() {
		fmt.Fprintln(out, "Log added successfully!")
	}
	return nil
}

func printFieldErrors(out io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, fields[k])
	}
}
