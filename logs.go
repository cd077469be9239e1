package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/frobware/prsweep/checklogs"
)

// fetchErrorLogs bulk-downloads error logs for every failing check
// across prs, returning error lines keyed by PR number and check name.
// Fetch failures produce one warning line each on stderr; they never
// fail the caller.
func fetchErrorLogs(ctx context.Context, prs []PullRequest, config *Config) map[int]map[string][]string {
	input := make([]checklogs.PullRequest, 0, len(prs))
	for _, pr := range prs {
		checks := pr.StatusCheckRollup.Contexts.Nodes
		converted := make([]checklogs.Check, 0, len(checks))
		for _, check := range checks {
			converted = append(converted, checklogs.Check{
				Name:       checkDisplayName(check),
				State:      check.State,
				Conclusion: check.Conclusion,
				URL:        checkDetailsURL(check),
			})
		}
		input = append(input, checklogs.PullRequest{Number: pr.Number, Checks: converted})
	}

	logger := newFetchLogger(config.DebugMode)
	fetcher := checklogs.NewFetcher(checklogs.Options{
		MaxConcurrent:  config.LogConcurrency,
		Timeout:        config.LogTimeout,
		ConnectTimeout: config.LogConnectTimeout,
		Logger:         &logger,
	})

	logs := make(map[int]map[string][]string)
	for _, result := range fetcher.FetchLogsForPRs(ctx, input) {
		for _, fetchErr := range result.FetchErrors {
			fmt.Fprintf(os.Stderr, "Warning: failed to fetch logs for %s\n", fetchErr)
		}
		if len(result.Logs) > 0 {
			logs[result.PR.Number] = result.Logs
		}
	}
	return logs
}

func newFetchLogger(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// checkDisplayName returns the check's display name: CheckRun nodes
// carry Name, StatusContext nodes carry Context.
func checkDisplayName(check StatusCheck) string {
	if check.Name != "" {
		return check.Name
	}
	return check.Context
}

// checkDetailsURL returns the check's external URL: CheckRun nodes
// carry DetailsUrl, StatusContext nodes carry TargetUrl.
func checkDetailsURL(check StatusCheck) string {
	if check.DetailsUrl != "" {
		return check.DetailsUrl
	}
	return check.TargetUrl
}
