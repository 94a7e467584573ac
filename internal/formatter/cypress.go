package formatter

import "github.com/quantmind-br/locrank/internal/core"

// NewCypress renders chained cy.* query calls
func NewCypress() Formatter {
	return &table{
		framework: core.FrameworkCypress,
		text: map[core.StrategyType]func(string) string{
			core.StrategyID:        func(v string) string { return `cy.get('#` + Escape(v) + `')` },
			core.StrategyName:      func(v string) string { return `cy.get('[name="` + Escape(v) + `"]')` },
			core.StrategyClass:     func(v string) string { return `cy.get('.` + Escape(v) + `')` },
			core.StrategyCSS:       func(v string) string { return `cy.get('` + Escape(v) + `')` },
			core.StrategyXPath:     func(v string) string { return `cy.xpath('` + Escape(v) + `')` },
			core.StrategyText:      func(v string) string { return `cy.contains('` + Escape(v) + `')` },
			core.StrategyAriaLabel: func(v string) string { return `cy.get('[aria-label="` + Escape(v) + `"]')` },
			core.StrategyRole:      func(v string) string { return `cy.get('[role="` + Escape(v) + `"]')` },
		},
		data: func(name, value string) string {
			return `cy.get('[` + name + `="` + value + `"]')`
		},
	}
}
