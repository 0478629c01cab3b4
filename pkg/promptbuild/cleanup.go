package promptbuild

import (
	"regexp"
	"strings"
)

var (
	blankRunPattern = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern = regexp.MustCompile(` {2,}`)
)

// CleanupOutput normalizes whitespace in assembled prompt text. It strips
// trailing spaces and tabs from every line, caps blank-line runs at one,
// turns tabs into spaces, collapses space runs, and trims the result.
// Indentation is not preserved beyond a single space.
func CleanupOutput(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.Join(lines, "\n")
	out = blankRunPattern.ReplaceAllString(out, "\n\n")
	out = strings.ReplaceAll(out, "\t", " ")
	out = spaceRunPattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
