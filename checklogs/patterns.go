package checklogs

import "regexp"

// pattern pairs a diagnostic name with the expression that recognises an
// error line.
type pattern struct {
	name string
	re   *regexp.Regexp
}

// errorPatterns is the immutable classification table, compiled once at
// startup. Declaration order is match order: classify reports the first
// entry that matches, so a line is attributed to at most one pattern
// even when several would apply.
var errorPatterns = []pattern{
	// Standard error keywords.
	{"error-keyword", regexp.MustCompile(`(?i)error:`)},
	{"failed-keyword", regexp.MustCompile(`(?i)failed:`)},
	{"failure-keyword", regexp.MustCompile(`(?i)failure:`)},
	{"fatal-keyword", regexp.MustCompile(`(?i)fatal:`)},
	{"panic-keyword", regexp.MustCompile(`(?i)panic:`)},
	{"error-prefix", regexp.MustCompile(`^E `)},
	{"fail-prefix", regexp.MustCompile(`^FAIL `)},

	// Common logging libraries.
	{"logrus-error", regexp.MustCompile(`level=error`)},
	{"zap-json-error", regexp.MustCompile(`"level":"error"`)},
	{"java-spring-error", regexp.MustCompile(`ERROR \[`)},
	{"structured-logger-error", regexp.MustCompile(`(?i)error \|`)},

	// Kubernetes-specific patterns.
	{"k8s-warning-events", regexp.MustCompile(`Warning \w+`)},
	{"k8s-crashloop", regexp.MustCompile(`(?i)crashloopbackoff`)},
	{"k8s-imagepull", regexp.MustCompile(`(?i)imagepullbackoff`)},
	{"k8s-evicted", regexp.MustCompile(`(?i)evicted`)},

	// CI-specific patterns.
	{"github-actions-error", regexp.MustCompile(`::error::`)},
	{"make-error", regexp.MustCompile(`make: \*\*\*.*Error \d+`)},
	{"docker-daemon-error", regexp.MustCompile(`Error response from daemon`)},
	{"build-failed", regexp.MustCompile(`(?i)build failed`)},
	{"test-failed", regexp.MustCompile(`(?i)test failed`)},

	// GitHub Actions runner patterns.
	{"github-actions-annotation", regexp.MustCompile(`##\[error\]`)},
	{"process-exit-code", regexp.MustCompile(`Process completed with exit code [1-9]`)},
	{"runner-error", regexp.MustCompile(`(?i)runner.*error`)},
	{"workflow-failed", regexp.MustCompile(`(?i)workflow.*failed`)},
	{"action-failed", regexp.MustCompile(`(?i)action.*failed`)},

	// Prow/Tide patterns.
	{"prow-component-error", regexp.MustCompile(`level=error.*prow`)},
	{"tide-component-error", regexp.MustCompile(`level=error.*tide`)},
	{"prow-general-error", regexp.MustCompile(`(?i)prow.*error`)},
	{"tide-general-error", regexp.MustCompile(`(?i)tide.*error`)},
	{"presubmit-failed", regexp.MustCompile(`(?i)presubmit.*failed`)},
	{"postsubmit-failed", regexp.MustCompile(`(?i)postsubmit.*failed`)},
	{"periodic-failed", regexp.MustCompile(`(?i)periodic.*failed`)},
	{"prowjob-failed", regexp.MustCompile(`(?i)prowjob.*failed`)},
	{"prow-hook-error", regexp.MustCompile(`(?i)hook.*error`)},
	{"prow-deck-error", regexp.MustCompile(`(?i)deck.*error`)},
	{"prow-spyglass-error", regexp.MustCompile(`(?i)spyglass.*error`)},
	{"prow-crier-error", regexp.MustCompile(`(?i)crier.*error`)},
	{"prow-sinker-error", regexp.MustCompile(`(?i)sinker.*error`)},

	// Other CI systems.
	{"jenkins-error", regexp.MustCompile(`(?i)jenkins.*error`)},
	{"tekton-error", regexp.MustCompile(`(?i)tekton.*error`)},
	{"gitlab-error", regexp.MustCompile(`(?i)gitlab.*error`)},
	{"circleci-error", regexp.MustCompile(`(?i)circleci.*error`)},
	{"travis-error", regexp.MustCompile(`(?i)travis.*error`)},
	{"buildkite-error", regexp.MustCompile(`(?i)buildkite.*error`)},
	{"concourse-error", regexp.MustCompile(`(?i)concourse.*error`)},

	// Go error patterns.
	{"go-error-field", regexp.MustCompile(`err="[^"]*"`)},
	{"go-cannot-error", regexp.MustCompile(`(?i)cannot `)},

	// Additional common patterns.
	{"exception-logs", regexp.MustCompile(`(?i)exception:`)},
	{"python-traceback", regexp.MustCompile(`(?i)traceback`)},
	{"stack-trace", regexp.MustCompile(`(?i)stack trace`)},
}

// classify reports the name of the first table pattern matching line.
// Pure and deterministic; the exit-code rule applied by the state
// machine is deliberately not part of the table.
func classify(line string) (string, bool) {
	for _, p := range errorPatterns {
		if p.re.MatchString(line) {
			return p.name, true
		}
	}
	return "", false
}
