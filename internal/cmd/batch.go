package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/locrank/internal/analysis"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/fsops"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// batchEntry is the JSON shape of one batch file
type batchEntry struct {
	Path         string `json:"path"`
	AnalysisID   string `json:"analysisId,omitempty"`
	ElementCount int    `json:"elementCount"`
	Cached       bool   `json:"cached"`
	BestLocator  string `json:"bestLocator,omitempty"`
	Error        string `json:"error,omitempty"`
}

// batchReport is the JSON shape of the batch command
type batchReport struct {
	Summary analysis.Summary `json:"summary"`
	Files   []batchEntry     `json:"files"`
}

// NewBatchCmd creates the batch command
func NewBatchCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags      analysisFlags
		workers    int
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyse every HTML page in a directory",
		Long: `Analyse every *.html and *.htm file below a directory in parallel.
Each file succeeds or fails on its own; the command fails if any file failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			ctx := cmd.Context()

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}

			if workers <= 0 {
				workers = cfg.Analysis.Workers
			}

			database, err := openDatabase(ctx, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer database.Close()

			svc := analysis.New(cfg, log, database)

			files, err := fsops.FindHTMLFiles(svc.Fs, dir)
			if err != nil {
				ui.PrintError("%v", err)
				return withExitCode(core.ExitInvalidArgs, err)
			}

			if len(files) == 0 {
				if flags.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), batchReport{Files: []batchEntry{}})
				}
				ui.PrintWarning("No HTML files found in %s", dir)
				return nil
			}

			log.Info().
				Str("dir", dir).
				Int("files", len(files)).
				Int("workers", workers).
				Msg("starting batch analysis")

			bar := ui.NewProgressBar(len(files), "Analysing", !flags.jsonOutput && !noProgress)
			items := svc.AnalyzeFiles(ctx, files, opts, flags.noCache, workers, func(item analysis.BatchItem) {
				bar.Describe(filepath.Base(item.Path))
				_ = bar.Add(1)
			})
			_ = bar.Finish()

			summary := analysis.Summarize(items)
			entries := batchEntries(items)

			if flags.jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), batchReport{Summary: summary, Files: entries}); err != nil {
					return err
				}
			} else {
				printBatchTable(cmd, entries)
				fmt.Fprintln(cmd.OutOrStdout())
				ui.PrintInfo("%d files: %d analysed, %d cached, %d failed, %d elements",
					summary.Files, summary.Analysed, summary.Cached, summary.Failed, summary.Elements)
			}

			if summary.Failed > 0 {
				return withExitCode(core.ExitAnalysis, fmt.Errorf("%d of %d files failed", summary.Failed, summary.Files))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "files analysed in parallel (default from config)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

func batchEntries(items []analysis.BatchItem) []batchEntry {
	entries := make([]batchEntry, 0, len(items))
	for _, item := range items {
		entry := batchEntry{Path: item.Path}
		if item.Err != nil {
			entry.Error = item.Err.Error()
			entries = append(entries, entry)
			continue
		}

		a := item.Outcome.Analysis
		entry.AnalysisID = a.AnalysisID
		entry.ElementCount = a.ElementCount
		entry.Cached = item.Outcome.Cached
		if len(a.Results) > 0 {
			if best, ok := a.Results[0].Best(); ok {
				entry.BestLocator = best.FormattedSelector
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func printBatchTable(cmd *cobra.Command, entries []batchEntry) {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"File", "Analysis", "Elements", "First Locator", "Status"}),
		tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, e := range entries {
		status := ui.Success.Sprint("ok")
		switch {
		case e.Error != "":
			status = ui.Error.Sprint(e.Error)
		case e.Cached:
			status = ui.Info.Sprint("cached")
		}

		best := e.BestLocator
		if best == "" {
			best = "-"
		}

		table.Append(
			e.Path,
			shortID(e.AnalysisID),
			fmt.Sprintf("%d", e.ElementCount),
			best,
			status,
		)
	}

	table.Render()
}
