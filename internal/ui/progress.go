package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps progressbar/v3 with locrank styling
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a counting progress bar on stderr. A disabled bar
// accepts every call but renders nothing.
func NewProgressBar(max int, description string, enabled bool) *ProgressBar {
	return newProgressBar(os.Stderr, max, description, enabled)
}

func newProgressBar(w io.Writer, max int, description string, enabled bool) *ProgressBar {
	bar := progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetVisibility(enabled),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if enabled {
				fmt.Fprint(w, "\n")
			}
		}),
	)

	return &ProgressBar{bar: bar}
}

// Add increments the progress bar by n
func (p *ProgressBar) Add(n int) error {
	return p.bar.Add(n)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() error {
	return p.bar.Finish()
}

// Describe changes the description of the progress bar
func (p *ProgressBar) Describe(description string) {
	p.bar.Describe(description)
}

// Current returns the number of completed steps
func (p *ProgressBar) Current() int64 {
	return p.bar.State().CurrentNum
}

// IsFinished returns true if the progress bar is finished
func (p *ProgressBar) IsFinished() bool {
	return p.bar.IsFinished()
}
