package formatter

import "github.com/quantmind-br/locrank/internal/core"

// NewSelenium renders By.* locator objects
func NewSelenium() Formatter {
	return &table{
		framework: core.FrameworkSelenium,
		text: map[core.StrategyType]func(string) string{
			core.StrategyID:        func(v string) string { return `By.id("` + Escape(v) + `")` },
			core.StrategyName:      func(v string) string { return `By.name("` + Escape(v) + `")` },
			core.StrategyClass:     func(v string) string { return `By.className("` + Escape(v) + `")` },
			core.StrategyCSS:       func(v string) string { return `By.cssSelector("` + Escape(v) + `")` },
			core.StrategyXPath:     func(v string) string { return `By.xpath("` + Escape(v) + `")` },
			core.StrategyText:      func(v string) string { return `By.linkText("` + Escape(v) + `")` },
			core.StrategyAriaLabel: func(v string) string { return `By.cssSelector("[aria-label='` + Escape(v) + `']")` },
			core.StrategyRole:      func(v string) string { return `By.cssSelector("[role='` + Escape(v) + `']")` },
		},
		data: func(name, value string) string {
			return `By.cssSelector("[` + name + `='` + value + `']")`
		},
	}
}
