package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Client searches pull requests in a single GitHub repository.
type Client struct {
	repo string
}

// NewClient creates a client scoped to repo ("owner/name").
func NewClient(repo string) (*Client, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository format: %s", repo)
	}
	return &Client{repo: repo}, nil
}

// Search runs query against the repository, scoped to open PRs, and
// returns matching pull requests sorted by descending PR number.
func (c *Client) Search(ctx context.Context, query string) ([]PullRequest, error) {
	parts := strings.Split(c.repo, "/")

	qb := NewQueryBuilder().
		Repo(parts[0], parts[1]).
		Type("pr").
		State("open")

	if query != "" {
		qb.AddTerm(query)
	}

	prs, err := searchPullRequests(ctx, qb.Build())
	if err != nil {
		return nil, err
	}

	sortPRsDescending(prs)
	return prs, nil
}

func sortPRsDescending(prs []PullRequest) {
	slices.SortFunc(prs, func(a, b PullRequest) int {
		if b.Number > a.Number {
			return 1
		}
		if b.Number < a.Number {
			return -1
		}
		return 0
	})
}

// HasRecentComment checks if a comment was posted within the throttle period
// using the comments already fetched with the PR data.
func HasRecentComment(pr PullRequest, commentText string, throttleWindow time.Duration) bool {
	if throttleWindow <= 0 {
		return false // No throttling means no deduplication.
	}

	cutoff := time.Now().Add(-throttleWindow)

	for _, comment := range pr.Comments {
		if strings.TrimSpace(comment.Body) == strings.TrimSpace(commentText) {
			createdAt, err := time.Parse(time.RFC3339, comment.CreatedAt)
			if err != nil {
				continue // Skip if we can't parse the timestamp.
			}
			if createdAt.After(cutoff) {
				return true // Found recent duplicate.
			}
		}
	}

	return false
}
