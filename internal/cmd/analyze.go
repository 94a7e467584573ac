package cmd

import (
	"fmt"

	"github.com/quantmind-br/locrank/internal/analysis"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/security"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags  analysisFlags
		filter string
		top    int
	)

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Generate ranked locators for an HTML page",
		Long: `Find every interactive element of an HTML page and print its best locator
strategies, scored and formatted for the chosen framework. Use "-" to read
the page from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			ctx := cmd.Context()

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}

			database, err := openDatabase(ctx, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer database.Close()

			svc := analysis.New(cfg, log, database)

			markup, err := svc.Load(input, cmd.InOrStdin())
			if err != nil {
				ui.PrintError("failed to read %s: %v", input, err)
				return withExitCode(core.ExitInvalidArgs, fmt.Errorf("read input: %w", err))
			}

			source := input
			if input == security.StdinPath {
				source = "stdin"
			}

			log.Debug().
				Str("source", source).
				Str("framework", string(opts.Framework)).
				Bool("accessibility", opts.IncludeAccessibility).
				Msg("starting analysis")

			outcome, err := svc.Analyze(ctx, analysis.Request{
				Source:  source,
				Markup:  markup,
				Options: opts,
				NoCache: flags.noCache,
			})
			if err != nil {
				ui.PrintError("%v", err)
				return withExitCode(core.ExitAnalysis, err)
			}

			a := outcome.Analysis
			results := analysis.FilterResults(a.Results, filter)

			if flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newReport(a, results, outcome.Cached))
			}

			if len(a.Results) == 0 {
				ui.PrintInfo("No interactive elements found in %s", source)
				return nil
			}
			if len(results) == 0 {
				ui.PrintWarning("No elements match filter %q", filter)
				return nil
			}

			ui.PrintHeader(fmt.Sprintf("Locators: %s", source))
			ui.PrintKeyValue("Analysis ID", a.AnalysisID)
			ui.PrintKeyValue("Framework", string(a.Framework))
			if outcome.Cached {
				ui.PrintKeyValue("Elements", fmt.Sprintf("%d (cached result)", a.ElementCount))
			} else {
				ui.PrintKeyValue("Elements", fmt.Sprintf("%d", a.ElementCount))
			}

			printResults(cmd.OutOrStdout(), results, top)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "only show elements whose tag, text or attributes fuzzy-match")
	cmd.Flags().IntVar(&top, "top", 3, "strategies shown per element (0 shows all)")

	return cmd
}
