package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/logging"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded analyses",
		Long:  "List, show, delete and summarize analyses recorded by 'match' and the API server.",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
		newHistoryDeleteCmd(a),
		newHistoryStatsCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			analyses, err := store.ListAnalyses(ctx, limit, offset)
			if err != nil {
				return err
			}
			if p := a.printer(cmd); p != nil {
				p.PrintHistory(analyses, nil)
			}
			return writeJSON(cmd.OutOrStdout(), "", analyses)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", db.DefaultListLimit, "Maximum number of analyses")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of analyses to skip")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one analysis with its full result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid analysis ID %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			analysis, err := store.GetAnalysis(ctx, id)
			if err != nil {
				return err
			}
			if analysis == nil {
				return fmt.Errorf("analysis %s: %w", id, db.ErrNotFound)
			}
			if p := a.printer(cmd); p != nil && analysis.Result != nil {
				p.PrintMatch(analysis.Result)
			}
			return writeJSON(cmd.OutOrStdout(), "", analysis)
		},
	}
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid analysis ID %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteAnalysis(ctx, id); err != nil {
				return fmt.Errorf("analysis %s: %w", id, err)
			}
			a.logger.Info("analysis deleted", zap.String(logging.FieldAnalysis, id.String()))
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}

func newHistoryStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Statistics(ctx)
			if err != nil {
				return err
			}
			if p := a.printer(cmd); p != nil {
				p.PrintHistory(nil, stats)
			}
			return writeJSON(cmd.OutOrStdout(), "", stats)
		},
	}
}
