package checklogs

import (
	"regexp"
	"strings"
)

const (
	maxErrorLines = 20
	maxScanLines  = 1000
	maxLineLength = 500

	truncationMarker = "... (truncated)"
)

// exitCodeRe treats any line reporting a non-zero exit code as an error
// line, independent of the pattern table.
var exitCodeRe = regexp.MustCompile(`(?i)exit code.*[1-9]`)

// taskState accumulates classification results for one (PR, check) log
// stream. It is owned by the worker driving that stream and is never
// shared between tasks.
type taskState struct {
	checkName      string
	errorLines     []string
	errorCount     int
	lineCount      int
	patternMatches map[string]int
}

func newTaskState(checkName string) *taskState {
	return &taskState{
		checkName:      checkName,
		patternMatches: make(map[string]int),
	}
}

// consume feeds one line into the accumulator and reports whether the
// stream should keep going. Processing stops once maxErrorLines matches
// have been recorded (appending the truncation marker) or maxScanLines
// lines have been examined, whichever comes first.
func (s *taskState) consume(line string) bool {
	s.lineCount++

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(line) > maxLineLength {
		return s.lineCount < maxScanLines
	}

	name, matched := classify(line)
	if !matched && exitCodeRe.MatchString(line) {
		name, matched = "exit-code", true
	}

	if matched {
		s.errorLines = append(s.errorLines, trimmed)
		s.errorCount++
		s.patternMatches[name]++

		if s.errorCount >= maxErrorLines {
			s.errorLines = append(s.errorLines, truncationMarker)
			return false
		}
	}

	return s.lineCount < maxScanLines
}
