package checklogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLogURL(t *testing.T) {
	tests := []struct {
		name     string
		checkURL string
		want     string
		wantOK   bool
	}{
		{
			name:     "prow view URL rewritten to storage",
			checkURL: "https://prow.ci.openshift.org/view/gs/test-platform-results/pr-logs/pull/123/job/456",
			want:     "https://storage.googleapis.com/test-platform-results/pr-logs/pull/123/job/456/build-log.txt",
			wantOK:   true,
		},
		{
			name:     "github actions run needs auth",
			checkURL: "https://github.com/owner/repo/actions/runs/987654321",
			wantOK:   false,
		},
		{
			name:     "raw URL passes through",
			checkURL: "https://ci.example.com/job/42/raw/log.txt",
			want:     "https://ci.example.com/job/42/raw/log.txt",
			wantOK:   true,
		},
		{
			name:     "storage host passes through",
			checkURL: "https://storage.googleapis.com/bucket/job/build-log.txt",
			want:     "https://storage.googleapis.com/bucket/job/build-log.txt",
			wantOK:   true,
		},
		{
			name:     "issue comment URL skipped",
			checkURL: "https://github.com/owner/repo/pull/123#issuecomment-100",
			wantOK:   false,
		},
		{
			name:     "unknown provider skipped",
			checkURL: "https://ci.example.com/builds/42",
			wantOK:   false,
		},
		{
			name:     "non-http scheme rejected even with raw in path",
			checkURL: "ftp://example.com/raw/log.txt",
			wantOK:   false,
		},
		{
			name:     "empty URL skipped",
			checkURL: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveLogURL(tt.checkURL)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveLogURLIsPure(t *testing.T) {
	url := "https://prow.ci.openshift.org/view/gs/bucket/job/123"

	first, ok1 := resolveLogURL(url)
	second, ok2 := resolveLogURL(url)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}
