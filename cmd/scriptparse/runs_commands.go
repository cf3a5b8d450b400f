package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scriptparse/internal/api"
	"scriptparse/internal/archive"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and prune archived parse runs",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsPurgeCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, api.FromRuns(runs))
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No archived runs")
				return nil
			}
			fmt.Fprintln(out, renderRunsTable(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func renderRunsTable(runs []*archive.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			string(run.Source),
			strconv.Itoa(run.LineCount),
			strconv.Itoa(run.BlockCount),
			formatLanguages(run.Languages),
		})
	}
	return renderTable(
		[]string{"ID", "Created", "Source", "Lines", "Blocks", "Languages"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var resultOnly bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if errors.Is(err, archive.ErrNotFound) {
				return fmt.Errorf("run %s not found", strings.TrimSpace(args[0]))
			}
			if err != nil {
				return err
			}
			if resultOnly {
				return writeRawJSON(cmd, run.ResultJSON, true)
			}
			return writeJSON(cmd, api.FromRunDetail(run))
		},
	}
	cmd.Flags().BoolVar(&resultOnly, "result", false, "Print only the archived response body")
	return cmd
}

func newRunsPurgeCommand(ctx *commandContext) *cobra.Command {
	var (
		olderThanDays int
		all           bool
	)
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete archived runs",
		Long:  "Delete runs older than --older-than-days (default: archive.retention_days), or every run with --all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			var removed int64
			switch {
			case all:
				removed, err = store.Clear(cmd.Context())
			default:
				days := cfg.Archive.RetentionDays
				if cmd.Flags().Changed("older-than-days") {
					days = olderThanDays
				}
				if days <= 0 {
					return errors.New("no retention window: pass --older-than-days N or --all")
				}
				removed, err = store.PurgeBefore(cmd.Context(), time.Now().AddDate(0, 0, -days))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().IntVar(&olderThanDays, "older-than-days", 0, "Remove runs older than this many days")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every archived run")
	return cmd
}
