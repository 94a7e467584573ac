package cmd

import (
	"errors"
	"fmt"

	"github.com/quantmind-br/locrank/internal/analysis"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/quantmind-br/locrank/internal/security"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		pick       bool
		element    int
		top        int
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "show <analysis-id>",
		Short: "Show a stored analysis",
		Long: `Show a stored analysis by id or unique id prefix. With --element or --pick,
print the full score breakdown of a single element.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ctx := cmd.Context()

			if err := security.ValidateAnalysisID(id); err != nil {
				ui.PrintError("%v", err)
				return withExitCode(core.ExitInvalidArgs, err)
			}

			database, err := openDatabase(ctx, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer func() { _ = database.Close() }()

			a, err := database.Resolve(ctx, id)
			if err != nil {
				switch {
				case errors.Is(err, db.ErrNotFound):
					ui.PrintError("analysis not found: %s", id)
					ui.PrintInfo("Use 'locrank history' to see stored analyses")
				case errors.Is(err, db.ErrAmbiguous):
					ui.PrintError("analysis id prefix %s matches several analyses, use more characters", id)
				default:
					ui.PrintError("failed to query database: %v", err)
				}
				return err
			}

			log.Debug().Str("analysis_id", a.AnalysisID).Msg("showing analysis")

			results := analysis.FilterResults(a.Results, filter)

			if pick {
				chosen, err := pickElement(results)
				if err != nil {
					return err
				}
				element = chosen + 1
			}

			if element != 0 {
				if element < 1 || element > len(results) {
					err := fmt.Errorf("element %d out of range (1-%d)", element, len(results))
					ui.PrintError("%v", err)
					return withExitCode(core.ExitInvalidArgs, err)
				}
				r := results[element-1]
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), r)
				}
				printBreakdown(cmd.OutOrStdout(), r)
				return nil
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newReport(a, results, false))
			}

			printAnalysisInfo(a)
			if len(results) == 0 {
				ui.PrintInfo("No elements to show")
				return nil
			}
			printResults(cmd.OutOrStdout(), results, top)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose an element interactively")
	cmd.Flags().IntVarP(&element, "element", "e", 0, "show the breakdown of the n-th element")
	cmd.Flags().IntVar(&top, "top", 3, "strategies shown per element (0 shows all)")
	cmd.Flags().StringVar(&filter, "filter", "", "only show elements whose tag, text or attributes fuzzy-match")

	return cmd
}

func pickElement(results []core.LocatorResult) (int, error) {
	options := make([]ui.SelectOption, len(results))
	for i, r := range results {
		detail := r.Element.Text
		if best, ok := r.Best(); ok {
			detail = best.FormattedSelector
		}
		options[i] = ui.SelectOption{Label: analysis.Label(r.Element), Detail: detail}
	}

	index, _, err := ui.SelectPromptDetailed("Element", options)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return -1, withExitCode(core.ExitInterrupted, err)
		}
		return -1, fmt.Errorf("select element: %w", err)
	}
	return index, nil
}

// printAnalysisInfo displays the analysis header
func printAnalysisInfo(a *db.Analysis) {
	ui.PrintHeader(fmt.Sprintf("Analysis: %s", a.Source))
	ui.PrintKeyValue("Analysis ID", a.AnalysisID)
	ui.PrintKeyValue("Framework", string(a.Framework))
	ui.PrintKeyValue("Accessibility", fmt.Sprintf("%t", a.IncludeAccessibility))
	ui.PrintKeyValue("Elements", fmt.Sprintf("%d", a.ElementCount))
	ui.PrintKeyValue("Created", a.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	ui.PrintKeyValue("Content Hash", shortID(a.ContentHash))
}
