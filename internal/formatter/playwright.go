package formatter

import "github.com/quantmind-br/locrank/internal/core"

// NewPlaywright renders selector engine strings; css and xpath pass through untouched
func NewPlaywright() Formatter {
	return &table{
		framework: core.FrameworkPlaywright,
		text: map[core.StrategyType]func(string) string{
			core.StrategyID:        func(v string) string { return "#" + Escape(v) },
			core.StrategyName:      func(v string) string { return `[name="` + Escape(v) + `"]` },
			core.StrategyClass:     func(v string) string { return "." + Escape(v) },
			core.StrategyCSS:       func(v string) string { return v },
			core.StrategyXPath:     func(v string) string { return v },
			core.StrategyText:      func(v string) string { return `text="` + Escape(v) + `"` },
			core.StrategyAriaLabel: func(v string) string { return `[aria-label="` + Escape(v) + `"]` },
			core.StrategyRole:      func(v string) string { return `[role="` + Escape(v) + `"]` },
		},
		data: func(name, value string) string {
			return `[` + name + `="` + value + `"]`
		},
	}
}
