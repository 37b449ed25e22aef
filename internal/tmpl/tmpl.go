package tmpl

import (
	"strconv"
	"strings"
)

// Vars holds the runtime values available to message templates.
type Vars struct {
	Dir      string // output directory
	Count    int    // icons written
	Duration string // compact elapsed time, e.g. "1.2s"
	Status   string // "ok" or "failed"
}

// Expand replaces {dir}, {count}, {duration} and {status} in s.
// Unknown placeholders are left as they are.
func Expand(s string, v Vars) string {
	return strings.NewReplacer(
		"{dir}", v.Dir,
		"{count}", strconv.Itoa(v.Count),
		"{duration}", v.Duration,
		"{status}", v.Status,
	).Replace(s)
}
