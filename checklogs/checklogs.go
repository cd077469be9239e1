// Package checklogs fetches raw CI build logs for failing pull request
// checks and extracts the lines that look like errors.
//
// The pipeline for each (PR, check) pair is: resolve the check's
// human-facing URL to a raw log URL, download it, and classify the log
// line by line against a fixed pattern table, stopping early once enough
// error lines have been collected. All pairs are processed concurrently
// under a single global ceiling, and one task's failure never affects
// another: per-task errors are collected alongside the results rather
// than aborting the call.
package checklogs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Check is one CI check attached to a pull request: either a check run
// (carrying a conclusion) or a legacy status context (carrying a state).
type Check struct {
	Name       string
	State      string
	Conclusion string
	URL        string
}

// PullRequest is the minimal view of a PR the fetcher needs.
type PullRequest struct {
	Number int
	Checks []Check
}

// FetchError describes a failed log fetch with enough context to report
// which URL, for which check, on which PR.
type FetchError struct {
	PRNumber  int
	CheckName string
	CheckURL  string
	LogURL    string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("PR %d check %q (%s): %s -> %v",
		e.PRNumber, e.CheckName, e.CheckURL, e.LogURL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PrResult holds everything gathered for one pull request: error lines
// keyed by check name, and any fetch failures for this PR's checks.
type PrResult struct {
	PR          PullRequest
	Logs        map[string][]string
	FetchErrors []*FetchError
}

// Options configures a Fetcher. Zero fields take the package defaults.
type Options struct {
	// MaxConcurrent caps the number of downloads in flight at once.
	MaxConcurrent int
	// Timeout is the overall per-request deadline.
	Timeout time.Duration
	// ConnectTimeout is the per-request connection-establish deadline.
	ConnectTimeout time.Duration
	// IsFailing decides which checks get their logs fetched. Defaults to
	// DefaultIsFailing.
	IsFailing func(Check) bool
	// Logger receives debug-level pattern-match statistics.
	Logger *zerolog.Logger
}

// DefaultIsFailing reports whether a check failed. Check runs fail on a
// terminal unsuccessful conclusion. Legacy status contexts fail on a
// FAILURE or ERROR state; a bare PENDING context is a merge prerequisite
// rather than a CI result and is not treated as failing.
func DefaultIsFailing(c Check) bool {
	switch c.Conclusion {
	case "FAILURE", "CANCELLED", "TIMED_OUT":
		return true
	case "":
		switch c.State {
		case "FAILURE", "ERROR":
			return true
		}
	}
	return false
}
