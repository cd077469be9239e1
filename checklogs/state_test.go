package checklogs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedLines(s *taskState, lines ...string) bool {
	for _, line := range lines {
		if !s.consume(line) {
			return false
		}
	}
	return true
}

func TestConsumeExtractsErrorLines(t *testing.T) {
	s := newTaskState("unit")

	cont := feedLines(s, "INFO starting", "ERROR: build failed", "INFO done")

	assert.True(t, cont)
	assert.Equal(t, []string{"ERROR: build failed"}, s.errorLines)
	assert.Equal(t, 1, s.errorCount)
	assert.Equal(t, 3, s.lineCount)
	assert.Equal(t, map[string]int{"error-keyword": 1}, s.patternMatches)
}

func TestConsumeTrimsMatchedLines(t *testing.T) {
	s := newTaskState("unit")

	s.consume("   ERROR: indented failure   ")

	require.Len(t, s.errorLines, 1)
	assert.Equal(t, "ERROR: indented failure", s.errorLines[0])
}

func TestConsumeSkipsBlankAndOversizedLines(t *testing.T) {
	s := newTaskState("unit")

	cont := feedLines(s,
		"",
		"   ",
		"ERROR: "+strings.Repeat("x", 600),
	)

	assert.True(t, cont)
	assert.Empty(t, s.errorLines)
	assert.Equal(t, 3, s.lineCount, "skipped lines still count toward the line cap")
}

func TestConsumeExitCodeRule(t *testing.T) {
	s := newTaskState("unit")

	s.consume("Command finished with exit code 3")
	s.consume("Command finished with exit code 0")

	assert.Equal(t, []string{"Command finished with exit code 3"}, s.errorLines)
	assert.Equal(t, map[string]int{"exit-code": 1}, s.patternMatches)
}

func TestConsumeStopsAtErrorCap(t *testing.T) {
	s := newTaskState("unit")

	stopped := false
	for i := 0; i < 25; i++ {
		if !s.consume(fmt.Sprintf("panic: boom %d", i)) {
			stopped = true
			break
		}
	}

	assert.True(t, stopped, "expected stop before all 25 lines were consumed")
	require.Len(t, s.errorLines, maxErrorLines+1)
	assert.Equal(t, truncationMarker, s.errorLines[maxErrorLines])
	assert.Equal(t, maxErrorLines, s.errorCount)
	assert.Equal(t, maxErrorLines, s.lineCount)
}

func TestConsumeStopsAtLineCap(t *testing.T) {
	s := newTaskState("unit")

	stopped := false
	for i := 0; i < 2*maxScanLines; i++ {
		if !s.consume(fmt.Sprintf("INFO line %d", i)) {
			stopped = true
			break
		}
	}

	assert.True(t, stopped)
	assert.Equal(t, maxScanLines, s.lineCount)
	assert.Empty(t, s.errorLines)
}
