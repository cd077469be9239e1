package checklogs

import (
	"net/url"
	"strings"
)

const (
	prowHost    = "prow.ci.openshift.org"
	storageHost = "storage.googleapis.com"
)

// resolveLogURL maps a check's details URL to a directly fetchable raw
// log URL. The rules are an allow-list checked in order, first match
// wins; anything unrecognised is simply not fetchable, never an error.
func resolveLogURL(checkURL string) (string, bool) {
	u, err := url.Parse(checkURL)
	if err != nil {
		return "", false
	}

	switch {
	case u.Host == prowHost && strings.Contains(u.Path, "/view/gs/"):
		// Prow spyglass view. The bucket path after /view/gs maps
		// straight onto the storage host, with the job log at a fixed
		// file name.
		return "https://" + storageHost + strings.Replace(u.Path, "/view/gs", "", 1) + "/build-log.txt", true

	case u.Host == "github.com" && strings.Contains(u.Path, "/actions/runs/"):
		// GitHub Actions logs need an authenticated API call.
		return "", false

	case strings.Contains(checkURL, "raw") || u.Host == storageHost:
		// Already points at a raw artifact.
		return validateLogURL(checkURL)

	case strings.Contains(checkURL, "#issuecomment"):
		// References a comment, not a log.
		return "", false

	default:
		return "", false
	}
}

// validateLogURL admits only well-formed http(s) URLs as fetch targets.
func validateLogURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return raw, true
}
