package core

import (
	"errors"
	"fmt"
	"strings"
)

// Options controls one run of the locator engine
type Options struct {
	Framework            Framework // Consumer framework for formatted selectors
	IncludeAccessibility bool      // Also synthesize aria-label and role strategies
}

// DefaultOptions mirrors the CLI defaults: selenium output, accessibility strategies on
func DefaultOptions() Options {
	return Options{
		Framework:            FrameworkSelenium,
		IncludeAccessibility: true,
	}
}

// ParseFramework resolves a framework name case-insensitively
func ParseFramework(name string) (Framework, error) {
	normalized := Framework(strings.ToLower(strings.TrimSpace(name)))
	for _, fw := range Frameworks {
		if fw == normalized {
			return fw, nil
		}
	}
	return "", fmt.Errorf("unsupported framework %q (supported: selenium, playwright, cypress)", name)
}

// DocumentError reports a document the engine cannot analyse at all
type DocumentError struct {
	Cause string
	Err   error
}

func (e *DocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid document: %s: %v", e.Cause, e.Err)
	}
	return "invalid document: " + e.Cause
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// IsDocumentError reports whether err (or anything it wraps) is a DocumentError
func IsDocumentError(err error) bool {
	var docErr *DocumentError
	return errors.As(err, &docErr)
}
