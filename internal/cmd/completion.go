package cmd

import (
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewCompletionCmd creates the completion command
func NewCompletionCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for locrank.

To load completions:

Bash:
  $ source <(locrank completion bash)

  # To load completions for each session, execute once:
  $ locrank completion bash > /etc/bash_completion.d/locrank

Zsh:
  $ locrank completion zsh > "${fpath[1]}/_locrank"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ locrank completion fish | source

  # To load completions for each session, execute once:
  $ locrank completion fish > ~/.config/fish/completions/locrank.fish

PowerShell:
  PS> locrank completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			out := cmd.OutOrStdout()

			var err error
			switch shell {
			case "bash":
				err = cmd.Root().GenBashCompletion(out)
			case "zsh":
				err = cmd.Root().GenZshCompletion(out)
			case "fish":
				err = cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			if err != nil {
				ui.PrintError("Failed to generate %s completion: %v", shell, err)
				return err
			}

			log.Debug().Str("shell", shell).Msg("generated shell completion")
			return nil
		},
	}

	return cmd
}
