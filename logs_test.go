package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchErrorLogs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "INFO starting\nERROR: compile failed\nINFO done\n")
	}))
	defer ts.Close()

	pr := PullRequest{Number: 12}
	pr.StatusCheckRollup.Contexts.Nodes = []StatusCheck{
		{Name: "ci/unit", Conclusion: "FAILURE", DetailsUrl: ts.URL + "/raw/build-log.txt"},
		{Name: "ci/lint", Conclusion: "SUCCESS", DetailsUrl: ts.URL + "/raw/other"},
	}

	logs := fetchErrorLogs(context.Background(), []PullRequest{pr}, &Config{})

	prLogs, ok := logs[12]
	if !ok {
		t.Fatal("Expected logs for PR 12")
	}

	lines, ok := prLogs["ci/unit"]
	if !ok {
		t.Fatal("Expected error lines for failing check ci/unit")
	}
	if len(lines) != 1 || lines[0] != "ERROR: compile failed" {
		t.Errorf("Unexpected error lines: %v", lines)
	}

	if _, ok := prLogs["ci/lint"]; ok {
		t.Error("Passing checks should not have logs fetched")
	}
}

func TestFetchErrorLogsStatusContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "fatal: remote hung up\n")
	}))
	defer ts.Close()

	// StatusContext nodes carry Context/TargetUrl instead of
	// Name/DetailsUrl; the bridge must handle both shapes.
	pr := PullRequest{Number: 9}
	pr.StatusCheckRollup.Contexts.Nodes = []StatusCheck{
		{Context: "ci/prow/e2e", State: "FAILURE", TargetUrl: ts.URL + "/raw/build-log.txt"},
	}

	logs := fetchErrorLogs(context.Background(), []PullRequest{pr}, &Config{})

	lines := logs[9]["ci/prow/e2e"]
	if len(lines) != 1 || lines[0] != "fatal: remote hung up" {
		t.Errorf("Unexpected error lines: %v", lines)
	}
}

func TestCheckDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		check    StatusCheck
		expected string
	}{
		{"check run", StatusCheck{Name: "unit"}, "unit"},
		{"status context", StatusCheck{Context: "ci/prow/e2e"}, "ci/prow/e2e"},
		{"name wins over context", StatusCheck{Name: "unit", Context: "ci"}, "unit"},
		{"neither", StatusCheck{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkDisplayName(tt.check); got != tt.expected {
				t.Errorf("checkDisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCheckDetailsURL(t *testing.T) {
	tests := []struct {
		name     string
		check    StatusCheck
		expected string
	}{
		{"check run", StatusCheck{DetailsUrl: "https://a"}, "https://a"},
		{"status context", StatusCheck{TargetUrl: "https://b"}, "https://b"},
		{"details wins over target", StatusCheck{DetailsUrl: "https://a", TargetUrl: "https://b"}, "https://a"},
		{"neither", StatusCheck{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkDetailsURL(tt.check); got != tt.expected {
				t.Errorf("checkDetailsURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}
