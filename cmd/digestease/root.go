package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"digestease/internal/client"
	"digestease/internal/config"
	"digestease/internal/journal"
	"digestease/internal/logger"
)

type cliState struct {
	baseURL string
	verbose bool
	session *journal.Session
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "digestease",
		Short:         "digestease records daily digestion logs and fetches generated rapports",
		Long:          "digestease is a client for the DigestEase journal service: add daily food and symptom logs and generate rapports from them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.log != nil {
				_ = state.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&state.baseURL, "base-url", "", "Journal service base URL (overrides JOURNAL_BASE_URL)")
	root.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(newLogCmd(state))
	root.AddCommand(newRapportsCmd(state))
	return root
}

func (s *cliState) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s.log = zap.NewNop()
	if s.verbose {
		if s.log, err = logger.New(cfg.Env); err != nil {
			return err
		}
	}

	baseURL := cfg.Client.BaseURL
	if override := strings.TrimSpace(s.baseURL); override != "" {
		baseURL = override
	}

	s.session = journal.NewSession(client.New(baseURL), s.log, nil)
	return nil
}
