package formatter

import (
	"strings"

	"github.com/quantmind-br/locrank/internal/core"
)

// Formatter renders raw candidate values in one framework's selector syntax
type Formatter interface {
	// Name returns the framework this formatter targets
	Name() core.Framework

	// Format renders value for strategy type t; false when the type has no rendering
	Format(t core.StrategyType, value core.RawValue) (string, bool)
}

// Registry resolves formatters by framework
type Registry struct {
	formatters []Formatter
}

// NewRegistry creates a registry with every built-in formatter
func NewRegistry() *Registry {
	return NewRegistryWith(
		NewSelenium(),
		NewPlaywright(),
		NewCypress(),
	)
}

// NewRegistryWith creates a registry holding exactly the given formatters
func NewRegistryWith(formatters ...Formatter) *Registry {
	return &Registry{formatters: formatters}
}

// Get retrieves the formatter for a framework
func (r *Registry) Get(framework core.Framework) (Formatter, bool) {
	for _, f := range r.formatters {
		if f.Name() == framework {
			return f, true
		}
	}
	return nil, false
}

// Format renders a value for a framework. Unknown (framework, type) pairs fall
// back to the raw value string.
func (r *Registry) Format(framework core.Framework, t core.StrategyType, value core.RawValue) string {
	f, ok := r.Get(framework)
	if !ok {
		return value.String()
	}
	formatted, ok := f.Format(t, value)
	if !ok {
		return value.String()
	}
	return formatted
}

// Frameworks returns the registered framework names
func (r *Registry) Frameworks() []core.Framework {
	names := make([]core.Framework, len(r.formatters))
	for i, f := range r.formatters {
		names[i] = f.Name()
	}
	return names
}

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`)

// Escape backslash-escapes quotes and backslashes before a value goes into a literal
func Escape(s string) string {
	return escaper.Replace(s)
}

// table is a per-framework rendering table keyed by strategy type
type table struct {
	framework core.Framework
	text      map[core.StrategyType]func(v string) string
	data      func(name, value string) string
}

func (t *table) Name() core.Framework {
	return t.framework
}

func (t *table) Format(st core.StrategyType, value core.RawValue) (string, bool) {
	if st == core.StrategyData {
		attr, ok := value.Data()
		if !ok || t.data == nil {
			return "", false
		}
		return t.data(attr.Name, Escape(attr.Value)), true
	}

	render, ok := t.text[st]
	if !ok {
		return "", false
	}
	return render(value.String()), true
}
