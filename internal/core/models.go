package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StrategyType identifies how a locator candidate finds its element
type StrategyType string

const (
	StrategyID        StrategyType = "id"
	StrategyName      StrategyType = "name"
	StrategyClass     StrategyType = "class"
	StrategyData      StrategyType = "data"
	StrategyText      StrategyType = "text"
	StrategyCSS       StrategyType = "css"
	StrategyXPath     StrategyType = "xpath"
	StrategyAriaLabel StrategyType = "aria-label"
	StrategyRole      StrategyType = "role"
)

// StrategyOrder is the synthesis order, which is also the tie-break order when ranking
var StrategyOrder = []StrategyType{
	StrategyID,
	StrategyName,
	StrategyClass,
	StrategyData,
	StrategyText,
	StrategyCSS,
	StrategyXPath,
	StrategyAriaLabel,
	StrategyRole,
}

// Framework is the test-automation framework a formatted selector targets
type Framework string

const (
	FrameworkSelenium   Framework = "selenium"
	FrameworkPlaywright Framework = "playwright"
	FrameworkCypress    Framework = "cypress"
)

// Frameworks lists every supported consumer framework
var Frameworks = []Framework{FrameworkSelenium, FrameworkPlaywright, FrameworkCypress}

// DataAttribute is the payload of a data-* strategy
type DataAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawValue carries the semantic payload of a candidate: a plain string for
// most strategies, a DataAttribute for data strategies.
type RawValue struct {
	text string
	data *DataAttribute
}

// StringValue wraps a plain string payload
func StringValue(s string) RawValue {
	return RawValue{text: s}
}

// DataValue wraps a data-* attribute payload
func DataValue(name, value string) RawValue {
	return RawValue{data: &DataAttribute{Name: name, Value: value}}
}

// Data returns the data attribute payload, if this value carries one
func (v RawValue) Data() (DataAttribute, bool) {
	if v.data == nil {
		return DataAttribute{}, false
	}
	return *v.data, true
}

// IsEmpty reports whether the value carries no usable payload
func (v RawValue) IsEmpty() bool {
	if v.data != nil {
		return v.data.Name == ""
	}
	return v.text == ""
}

// String renders the payload; data attributes render as name=value
func (v RawValue) String() string {
	if v.data != nil {
		return v.data.Name + "=" + v.data.Value
	}
	return v.text
}

// MarshalJSON encodes a string payload as a JSON string and a data payload as an object
func (v RawValue) MarshalJSON() ([]byte, error) {
	if v.data != nil {
		return json.Marshal(v.data)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts either a JSON string or a {name,value} object
func (v *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var attr DataAttribute
		if err := json.Unmarshal(b, &attr); err != nil {
			return fmt.Errorf("decode data attribute: %w", err)
		}
		*v = RawValue{data: &attr}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode raw value: %w", err)
	}
	*v = RawValue{text: s}
	return nil
}

// ElementDescriptor is a read-only view of one detected DOM element
type ElementDescriptor struct {
	Tag        string            `json:"tag"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
}

// LocatorCandidate is one synthesized way of locating an element
type LocatorCandidate struct {
	Type              StrategyType `json:"type"`
	RawValue          RawValue     `json:"rawValue"`
	FormattedSelector string       `json:"formattedSelector"`
}

// Scores holds the five normalized sub-scores of a candidate
type Scores struct {
	Uniqueness    float64 `json:"uniqueness"`
	Stability     float64 `json:"stability"`
	Readability   float64 `json:"readability"`
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
}

// ScoredStrategy is a candidate after scoring and ranking
type ScoredStrategy struct {
	LocatorCandidate
	Scores     Scores  `json:"scores"`
	TotalScore float64 `json:"totalScore"`
	Rank       int     `json:"rank"`
}

// NodeRef identifies an ancestor element by tag, id and class
type NodeRef struct {
	Tag   string `json:"tag"`
	ID    string `json:"id,omitempty"`
	Class string `json:"class,omitempty"`
}

// FormRef identifies the enclosing form of an element
type FormRef struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Action string `json:"action,omitempty"`
}

// ElementContext is the structural ancestry of a located element
type ElementContext struct {
	Parent     *NodeRef `json:"parent"`
	Form       *FormRef `json:"form"`
	Section    *NodeRef `json:"section"`
	Navigation bool     `json:"navigation"`
}

// LocatorResult is the engine output for one interactive element
type LocatorResult struct {
	Element    ElementDescriptor `json:"element"`
	Strategies []ScoredStrategy  `json:"strategies"`
	Context    ElementContext    `json:"context"`
}

// Best returns the rank 1 strategy of the result
func (r LocatorResult) Best() (ScoredStrategy, bool) {
	if len(r.Strategies) == 0 {
		return ScoredStrategy{}, false
	}
	return r.Strategies[0], true
}

// Exit codes
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitInvalidArgs = 2
	ExitAnalysis    = 3
	ExitDatabase    = 5
	ExitInterrupted = 130
)
