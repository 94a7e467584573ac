package security

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/locrank/internal/core"
)

// MinHTMLLength is the shortest markup worth analysing
const MinHTMLLength = 10

// StdinPath is the input path that selects standard input
const StdinPath = "-"

var validAnalysisIDRegex = regexp.MustCompile(`^[a-fA-F0-9-]+$`)

// ValidateHTML checks markup size before it is parsed
func ValidateHTML(markup string, maxBytes int64) error {
	if strings.Contains(markup, "\x00") {
		return fmt.Errorf("html contains null byte")
	}

	trimmed := strings.TrimSpace(markup)
	if n := utf8.RuneCountInString(trimmed); n < MinHTMLLength {
		return fmt.Errorf("html too short: %d characters (min %d)", n, MinHTMLLength)
	}

	if maxBytes > 0 && int64(len(markup)) > maxBytes {
		return fmt.Errorf("html too large: %d bytes (max %d)", len(markup), maxBytes)
	}

	if !strings.Contains(trimmed, "<") {
		return fmt.Errorf("input does not look like html: no tags found")
	}

	return nil
}

// ValidateFramework resolves a framework flag value
func ValidateFramework(name string) (core.Framework, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("framework cannot be empty")
	}
	return core.ParseFramework(name)
}

// ValidateAnalysisID validates an analysis id or id prefix
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}

	if len(id) > 100 {
		return fmt.Errorf("analysis ID too long")
	}

	if !validAnalysisIDRegex.MatchString(id) {
		return fmt.Errorf("invalid analysis ID format: %s", id)
	}

	return nil
}

// ValidateInputPath validates a path given on the command line
func ValidateInputPath(path string) error {
	if path == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	if path == StdinPath {
		return nil
	}

	if len(path) >= 4096 {
		return fmt.Errorf("input path too long (max 4096 characters)")
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("input path contains null byte")
	}

	if strings.ContainsAny(path, "\n\r") {
		return fmt.Errorf("input path contains line breaks")
	}

	return nil
}
