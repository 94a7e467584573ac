package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/locrank/internal/analysis"
	"github.com/quantmind-br/locrank/internal/core"
	"github.com/quantmind-br/locrank/internal/db"
	"github.com/quantmind-br/locrank/internal/ui"
)

// analysisReport is the JSON shape of analyze and show
type analysisReport struct {
	AnalysisID           string               `json:"analysisId"`
	Source               string               `json:"source"`
	Framework            core.Framework       `json:"framework"`
	IncludeAccessibility bool                 `json:"includeAccessibility"`
	Cached               bool                 `json:"cached"`
	ElementCount         int                  `json:"elementCount"`
	Results              []core.LocatorResult `json:"results"`
}

func newReport(a *db.Analysis, results []core.LocatorResult, cached bool) analysisReport {
	if results == nil {
		results = []core.LocatorResult{}
	}
	return analysisReport{
		AnalysisID:           a.AnalysisID,
		Source:               a.Source,
		Framework:            a.Framework,
		IncludeAccessibility: a.IncludeAccessibility,
		Cached:               cached,
		ElementCount:         a.ElementCount,
		Results:              results,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResults prints each element with its top strategies as a table
func printResults(w io.Writer, results []core.LocatorResult, top int) {
	for i, r := range results {
		fmt.Fprintf(w, "\n%s %s", ui.Bold.Sprintf("%d.", i+1), ui.Highlight.Sprint(analysis.Label(r.Element)))
		if r.Element.Text != "" {
			fmt.Fprintf(w, " %s", ui.Muted.Sprintf("%q", r.Element.Text))
		}
		fmt.Fprintln(w)

		if ctx := describeContext(r.Context); ctx != "" {
			fmt.Fprintf(w, "   %s %s\n", ui.Arrow, ctx)
		}

		strategies := r.Strategies
		if top > 0 && len(strategies) > top {
			strategies = strategies[:top]
		}
		printStrategyTable(w, strategies)
	}
}

func printStrategyTable(w io.Writer, strategies []core.ScoredStrategy) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Type", "Locator", "Score"}),
		tablewriter.WithAlignment(tw.MakeAlign(4, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, s := range strategies {
		table.Append(
			fmt.Sprintf("%d", s.Rank),
			ui.ColorizeStrategyType(s.Type),
			s.FormattedSelector,
			ui.ColorizeScore(s.TotalScore),
		)
	}

	table.Render()
}

// printBreakdown prints every strategy of one element with all sub-scores
func printBreakdown(w io.Writer, r core.LocatorResult) {
	fmt.Fprintf(w, "%s %s\n", ui.Bold.Sprint("Element:"), analysis.Label(r.Element))
	if r.Element.Text != "" {
		fmt.Fprintf(w, "%s %s\n", ui.Bold.Sprint("Text:"), r.Element.Text)
	}
	if ctx := describeContext(r.Context); ctx != "" {
		fmt.Fprintf(w, "%s %s\n", ui.Bold.Sprint("Context:"), ctx)
	}
	fmt.Fprintln(w)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Type", "Locator", "Uniq", "Stab", "Read", "Perf", "A11y", "Total"}),
		tablewriter.WithAlignment(tw.MakeAlign(9, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleLight)),
	)

	for _, s := range r.Strategies {
		table.Append(
			fmt.Sprintf("%d", s.Rank),
			ui.ColorizeStrategyType(s.Type),
			s.FormattedSelector,
			fmt.Sprintf("%.2f", s.Scores.Uniqueness),
			fmt.Sprintf("%.2f", s.Scores.Stability),
			fmt.Sprintf("%.2f", s.Scores.Readability),
			fmt.Sprintf("%.2f", s.Scores.Performance),
			fmt.Sprintf("%.2f", s.Scores.Accessibility),
			ui.ColorizeScore(s.TotalScore),
		)
	}

	table.Render()
}

// describeContext renders the structural ancestry in one line
func describeContext(c core.ElementContext) string {
	var parts []string
	if c.Form != nil {
		name := c.Form.ID
		if name == "" {
			name = c.Form.Name
		}
		if name == "" {
			name = c.Form.Action
		}
		parts = append(parts, strings.TrimSpace("in form "+name))
	}
	if c.Section != nil {
		ref := c.Section.Tag
		if c.Section.ID != "" {
			ref += "#" + c.Section.ID
		}
		parts = append(parts, "in "+ref)
	}
	if c.Navigation {
		parts = append(parts, "in navigation")
	}
	return strings.Join(parts, ", ")
}
