package ingestion

import (
	"io"

	"github.com/jonathan/resume-fit/internal/fetch"
)

// extractHTML returns the main text of an uploaded HTML document, such as a
// saved job posting or an exported resume.
func extractHTML(r io.Reader) (string, error) {
	selectors := append(fetch.JobPostingSelectors(), fetch.ResumePageSelectors()...)
	return fetch.ExtractMainTextFrom(r, selectors, fetch.PlatformNoiseSelectors(fetch.PlatformUnknown)...)
}
