package transcript

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[-\s]+`)
)

// slugify turns an episode title into a filesystem-safe file name stem:
// punctuation is stripped and runs of spaces/hyphens collapse into single
// hyphens. Titles that reduce to nothing become "episode".
func slugify(title string) string {
	s := slugStripPattern.ReplaceAllString(title, "")
	s = slugCollapsePattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "episode"
	}
	return s
}
