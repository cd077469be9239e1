package checklogs

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied by NewFetcher for unset Options fields.
const (
	DefaultMaxConcurrent  = 20
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
)

// Retry policy for transient failures: whole-request retries with
// exponential backoff, bounded delay, bounded attempt count.
const (
	maxRetries    = 3
	retryMinDelay = 100 * time.Millisecond
	retryMaxDelay = 5 * time.Second
)

// Fetcher downloads and classifies CI logs for failing checks. The HTTP
// client and its connection pool are shared read-only across all
// workers; the worker count is the only throttle.
type Fetcher struct {
	client        *http.Client
	maxConcurrent int
	isFailing     func(Check) bool
	logger        zerolog.Logger
}

// NewFetcher builds a Fetcher from opts, filling in defaults for unset
// fields.
func NewFetcher(opts Options) *Fetcher {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.IsFailing == nil {
		opts.IsFailing = DefaultIsFailing
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		maxConcurrent: opts.MaxConcurrent,
		isFailing:     opts.IsFailing,
		logger:        logger,
	}
}

// fetchTask is one (PR, failing check) unit of fetch-and-classify work.
type fetchTask struct {
	prNumber  int
	checkName string
	checkURL  string
	logURL    string
}

// taskOutcome is the final result of one task: exactly one of state or
// err is set.
type taskOutcome struct {
	task  fetchTask
	state *taskState
	err   error
}

// FetchLogsForPRs drives every failing check with a resolvable log URL
// through the download/classify pipeline and returns one PrResult per
// input PR, in input order. Per-task failures are collected into the
// owning PrResult; they never abort sibling tasks or the overall call.
// When no check yields a task the call returns immediately without any
// network activity.
func (f *Fetcher) FetchLogsForPRs(ctx context.Context, prs []PullRequest) []PrResult {
	results := make(map[int]*PrResult, len(prs))
	for _, pr := range prs {
		if _, ok := results[pr.Number]; ok {
			continue
		}
		results[pr.Number] = &PrResult{PR: pr, Logs: make(map[string][]string)}
	}

	tasks := f.collectTasks(prs)

	for _, outcome := range f.runTasks(ctx, tasks) {
		prResult, ok := results[outcome.task.prNumber]
		if !ok {
			continue
		}

		if outcome.err != nil {
			prResult.FetchErrors = append(prResult.FetchErrors, &FetchError{
				PRNumber:  outcome.task.prNumber,
				CheckName: outcome.task.checkName,
				CheckURL:  outcome.task.checkURL,
				LogURL:    outcome.task.logURL,
				Err:       outcome.err,
			})
			continue
		}

		state := outcome.state
		if len(state.patternMatches) > 0 {
			f.logger.Debug().
				Int("pr_number", outcome.task.prNumber).
				Str("check_name", state.checkName).
				Int("total_errors", state.errorCount).
				Int("total_lines", state.lineCount).
				Interface("patterns", state.patternMatches).
				Msg("error pattern match statistics")
		}
		if len(state.errorLines) > 0 {
			prResult.Logs[state.checkName] = state.errorLines
		}
	}

	ordered := make([]PrResult, 0, len(prs))
	for _, pr := range prs {
		if r, ok := results[pr.Number]; ok {
			ordered = append(ordered, *r)
			delete(results, pr.Number)
		}
	}
	return ordered
}

// collectTasks builds the task list: one task per failing check whose
// URL resolves to a raw log. Unresolvable checks are dropped silently.
func (f *Fetcher) collectTasks(prs []PullRequest) []fetchTask {
	var tasks []fetchTask
	for _, pr := range prs {
		for _, check := range pr.Checks {
			if !f.isFailing(check) || check.URL == "" {
				continue
			}
			logURL, ok := resolveLogURL(check.URL)
			if !ok {
				continue
			}
			tasks = append(tasks, fetchTask{
				prNumber:  pr.Number,
				checkName: check.Name,
				checkURL:  check.URL,
				logURL:    logURL,
			})
		}
	}
	return tasks
}

// runTasks drains the task list through a fixed-width worker pool. Each
// worker runs one task's whole request/stream/classify pipeline before
// taking the next; completion order is unconstrained. All outcomes are
// gathered here and mutated into results by the single-threaded caller.
func (f *Fetcher) runTasks(ctx context.Context, tasks []fetchTask) []taskOutcome {
	if len(tasks) == 0 {
		return nil
	}

	queue := make(chan fetchTask)
	outcomes := make(chan taskOutcome, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < min(f.maxConcurrent, len(tasks)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				state, err := f.fetchOne(ctx, task)
				outcomes <- taskOutcome{task: task, state: state, err: err}
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()
	close(outcomes)

	collected := make([]taskOutcome, 0, len(tasks))
	for outcome := range outcomes {
		collected = append(collected, outcome)
	}
	return collected
}

// fetchOne runs a task to completion, retrying transient failures with
// exponential backoff. Retries re-issue the whole request; accumulated
// state is never replayed across attempts.
func (f *Fetcher) fetchOne(ctx context.Context, task fetchTask) (*taskState, error) {
	var lastErr error
	delay := retryMinDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
		}

		state, transient, err := f.attempt(ctx, task)
		if err == nil {
			return state, nil
		}
		if !transient {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// attempt issues one GET and streams the body through a fresh task
// state. The transient result reports whether the failure is worth
// retrying: transport errors, 429 and 5xx are; other HTTP statuses and
// mid-stream read errors are not.
func (f *Fetcher) attempt(ctx context.Context, task fetchTask) (state *taskState, transient bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.logURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("HTTP %d from %s", resp.StatusCode, task.logURL)
	}

	state = newTaskState(task.checkName)

	// The state machine skips lines over 500 bytes, but the scanner must
	// still be able to carry them to the next line boundary.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)

	for scanner.Scan() {
		if !state.consume(scanner.Text()) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("failed to read line: %w", err)
	}

	return state, false, nil
}
