package cmd

import (
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locrank",
		Short: "Generate and rank element locators for test automation",
		Long: `locrank finds the interactive elements of an HTML page, generates every
reasonable way to locate each one (id, name, class, data-*, text, CSS, XPath,
aria-label, role), scores them and prints the best strategies formatted for
Selenium, Playwright or Cypress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewAnalyzeCmd(cfg, log))
	cmd.AddCommand(NewBatchCmd(cfg, log))
	cmd.AddCommand(NewInspectCmd(cfg, log))
	cmd.AddCommand(NewHistoryCmd(cfg, log))
	cmd.AddCommand(NewShowCmd(cfg, log))
	cmd.AddCommand(NewForgetCmd(cfg, log))
	cmd.AddCommand(NewDoctorCmd(cfg, log))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}
