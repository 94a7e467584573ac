package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput      bool
		filterSource    string
		filterFramework string
		sortBy          string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored analyses",
		Long:  `List every stored analysis with filtering and sorting options.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			database, err := openDatabase(ctx, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer database.Close()

			analyses, err := database.List(ctx)
			if err != nil {
				ui.PrintError("failed to list analyses: %v", err)
				return withExitCode(core.ExitDatabase, fmt.Errorf("list analyses: %w", err))
			}

			filtered := filterAnalyses(analyses, filterSource, filterFramework)
			sortAnalyses(filtered, sortBy)

			log.Debug().
				Int("total", len(analyses)).
				Int("shown", len(filtered)).
				Msg("listing analyses")

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), filtered)
			}

			if len(filtered) == 0 {
				if filterSource != "" || filterFramework != "" {
					ui.PrintWarning("No analyses found matching filters")
				} else {
					ui.PrintInfo("No analyses stored")
				}
				return nil
			}

			ui.PrintHeader("Stored Analyses")
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d analyses", len(analyses))
			if len(filtered) != len(analyses) {
				fmt.Fprintf(cmd.OutOrStdout(), " (showing %d filtered)", len(filtered))
			}
			fmt.Fprintln(cmd.OutOrStdout())

			printHistoryTable(cmd, filtered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&filterSource, "source", "", "filter by source (partial match)")
	cmd.Flags().StringVar(&filterFramework, "framework", "", "filter by framework")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort by: date, source, elements")

	return cmd
}

// filterAnalyses filters by source substring and framework, both case-insensitive
func filterAnalyses(analyses []db.Analysis, source, framework string) []db.Analysis {
	filtered := make([]db.Analysis, 0, len(analyses))

	for _, a := range analyses {
		if framework != "" && !strings.EqualFold(string(a.Framework), framework) {
			continue
		}
		if source != "" && !strings.Contains(strings.ToLower(a.Source), strings.ToLower(source)) {
			continue
		}
		filtered = append(filtered, a)
	}

	return filtered
}

// sortAnalyses sorts analyses by the specified field; date is newest first
func sortAnalyses(analyses []db.Analysis, sortBy string) {
	switch strings.ToLower(sortBy) {
	case "source":
		sort.SliceStable(analyses, func(i, j int) bool {
			return strings.ToLower(analyses[i].Source) < strings.ToLower(analyses[j].Source)
		})
	case "elements":
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].ElementCount > analyses[j].ElementCount
		})
	default:
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
		})
	}
}

func printHistoryTable(cmd *cobra.Command, analyses []db.Analysis) {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"ID", "Source", "Framework", "Elements", "Created"}),
		tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, a := range analyses {
		source := a.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}

		table.Append(
			shortID(a.AnalysisID),
			source,
			string(a.Framework),
			fmt.Sprintf("%d", a.ElementCount),
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	table.Render()
}
