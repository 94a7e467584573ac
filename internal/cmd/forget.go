package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/quantmind-br/locrank/internal/security"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewForgetCmd creates the forget command
func NewForgetCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		all       bool
		yes       bool
		olderThan time.Duration
	)

	cmd := &cobra.Command{
		Use:   "forget [analysis-id]",
		Short: "Delete stored analyses",
		Long: `Delete one stored analysis by id or unique id prefix, every analysis with
--all, or analyses older than a duration with --older-than.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			modes := 0
			if len(args) == 1 {
				modes++
			}
			if all {
				modes++
			}
			if olderThan > 0 {
				modes++
			}
			if modes != 1 {
				err := errors.New("give exactly one of: an analysis id, --all, --older-than")
				ui.PrintError("%v", err)
				return withExitCode(core.ExitInvalidArgs, err)
			}

			database, err := openDatabase(ctx, cfg)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer database.Close()

			switch {
			case all:
				if !confirm(yes, "delete", "every stored analysis") {
					ui.PrintInfo("Nothing deleted")
					return nil
				}
				n, err := database.DeleteAll(ctx)
				if err != nil {
					ui.PrintError("failed to delete analyses: %v", err)
					return withExitCode(core.ExitDatabase, err)
				}
				log.Info().Int64("deleted", n).Msg("deleted all analyses")
				ui.PrintSuccess("Deleted %d analyses", n)

			case olderThan > 0:
				cutoff := time.Now().Add(-olderThan)
				if !confirm(yes, "delete", fmt.Sprintf("analyses older than %s", olderThan)) {
					ui.PrintInfo("Nothing deleted")
					return nil
				}
				n, err := database.Prune(ctx, cutoff)
				if err != nil {
					ui.PrintError("failed to prune analyses: %v", err)
					return withExitCode(core.ExitDatabase, err)
				}
				log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("pruned analyses")
				ui.PrintSuccess("Deleted %d analyses older than %s", n, olderThan)

			default:
				id := args[0]
				if err := security.ValidateAnalysisID(id); err != nil {
					ui.PrintError("%v", err)
					return withExitCode(core.ExitInvalidArgs, err)
				}

				a, err := database.Resolve(ctx, id)
				if err != nil {
					if errors.Is(err, db.ErrNotFound) {
						ui.PrintError("analysis not found: %s", id)
					} else {
						ui.PrintError("%v", err)
					}
					return err
				}

				if !confirm(yes, "delete", fmt.Sprintf("analysis %s (%s)", shortID(a.AnalysisID), a.Source)) {
					ui.PrintInfo("Nothing deleted")
					return nil
				}
				if err := database.Delete(ctx, a.AnalysisID); err != nil {
					ui.PrintError("failed to delete analysis: %v", err)
					return withExitCode(core.ExitDatabase, err)
				}
				log.Info().Str("analysis_id", a.AnalysisID).Msg("deleted analysis")
				ui.PrintSuccess("Deleted analysis %s", shortID(a.AnalysisID))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete every stored analysis")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "delete analyses older than this duration (e.g. 72h)")

	return cmd
}

// confirm asks before a destructive action unless skip is set
func confirm(skip bool, action, target string) bool {
	if skip {
		return true
	}
	ok, err := ui.ConfirmDangerousAction(action, target)
	return err == nil && ok
}
