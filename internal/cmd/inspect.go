package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/locrank/internal/config"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/dom"
	"github.com/quantmind-br/locrank/internal/fsops"
	"github.com/quantmind-br/locrank/internal/security"
	"github.com/quantmind-br/locrank/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Summarize the structure of an HTML page",
		Long:  `Show page metadata, forms with their fields, elements carrying accessibility hints and shadow DOM hosts.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			markup, err := readInput(afero.NewOsFs(), input, cmd, cfg.Analysis.MaxHTMLBytes)
			if err != nil {
				ui.PrintError("failed to read %s: %v", input, err)
				return withExitCode(core.ExitInvalidArgs, err)
			}

			if err := security.ValidateHTML(markup, cfg.Analysis.MaxHTMLBytes); err != nil {
				ui.PrintError("%v", err)
				return withExitCode(core.ExitInvalidArgs, err)
			}

			doc, err := dom.ParseString(markup)
			if err != nil {
				ui.PrintError("failed to parse %s: %v", input, err)
				return withExitCode(core.ExitAnalysis, err)
			}

			summary := doc.Inspect()
			log.Debug().
				Str("source", input).
				Int("forms", len(summary.Forms)).
				Int("accessible", len(summary.Accessibility)).
				Msg("page inspected")

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			printPageSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}

// readInput reads markup from a file or, for "-", from the command's stdin
func readInput(fs afero.Fs, input string, cmd *cobra.Command, maxBytes int64) (string, error) {
	if err := security.ValidateInputPath(input); err != nil {
		return "", err
	}
	if input == security.StdinPath {
		return fsops.ReadHTMLFrom(cmd.InOrStdin(), maxBytes)
	}
	return fsops.ReadHTML(fs, input, maxBytes)
}

func printPageSummary(cmd *cobra.Command, summary dom.PageSummary) {
	m := summary.Metadata
	ui.PrintHeader("Page Summary")

	title := m.Title
	if title == "" {
		title = "(none)"
	}
	ui.PrintKeyValue("Title", title)
	if m.Description != "" {
		ui.PrintKeyValue("Description", m.Description)
	}
	if m.Language != "" {
		ui.PrintKeyValue("Language", m.Language)
	}
	if m.Charset != "" {
		ui.PrintKeyValue("Charset", m.Charset)
	}
	if m.Viewport != "" {
		ui.PrintKeyValue("Viewport", m.Viewport)
	}
	ui.PrintKeyValue("Counts", fmt.Sprintf("%d forms, %d inputs, %d buttons, %d links, %d images",
		m.Forms, m.Inputs, m.Buttons, m.Links, m.Images))

	for _, form := range summary.Forms {
		name := form.ID
		if name == "" {
			name = form.Name
		}
		ui.PrintSubheader(fmt.Sprintf("Form %s", name))
		if form.Action != "" {
			ui.PrintKeyValue("Action", fmt.Sprintf("%s %s", form.Method, form.Action))
		}

		table := tablewriter.NewTable(cmd.OutOrStdout(),
			tablewriter.WithHeader([]string{"Control", "Name", "ID", "Required", "Placeholder"}),
			tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
			tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
		)
		for _, f := range form.Fields {
			required := "-"
			if f.Required {
				required = "yes"
			}
			table.Append(f.Type, orDash(f.Name), orDash(f.ID), required, orDash(f.Placeholder))
		}
		table.Render()
	}

	if len(summary.Accessibility) > 0 {
		ui.PrintSubheader("Accessibility")
		items := make([]string, 0, len(summary.Accessibility))
		for _, el := range summary.Accessibility {
			hint := el.AriaLabel
			switch {
			case hint != "":
			case el.Role != "":
				hint = "role=" + el.Role
			case el.Alt != "":
				hint = "alt=" + el.Alt
			default:
				hint = "aria-describedby=" + el.AriaDescribedby
			}
			items = append(items, fmt.Sprintf("%s: %s", el.Tag, hint))
		}
		ui.PrintList(items)
	}

	if len(summary.ShadowHosts) > 0 {
		ui.PrintSubheader("Shadow Hosts")
		items := make([]string, 0, len(summary.ShadowHosts))
		for _, h := range summary.ShadowHosts {
			items = append(items, fmt.Sprintf("%s id=%s class=%s", h.Tag, orDash(h.ID), orDash(h.Class)))
		}
		ui.PrintList(items)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
