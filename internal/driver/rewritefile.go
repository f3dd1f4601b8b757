package driver

import (
	"os"

	"fstrify/internal/rewrite"
)

// RewriteFile reads a file from disk and rewrites percent-format sites
// inside the inclusive 1-based line window [firstLine, lastLine]. The
// returned string is exactly that window of the rewritten document; see
// rewrite.Rewrite for the error contract.
func RewriteFile(path string, firstLine, lastLine int) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return rewrite.Rewrite(string(content), firstLine, lastLine)
}
