package forms

import (
	"regexp"
	"strconv"
	"strings"
)

var stepSuffix = regexp.MustCompile(`^(.*) - (\d+)$`)

// SplitStepLabel splits "Email - 2" into ("Email", 2, true).  Labels without the marker come back
// unchanged with ok false.
func SplitStepLabel(label string) (text string, step int, ok bool) {
	m := stepSuffix.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return label, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return label, 0, false
	}
	return strings.TrimSpace(m[1]), n, true
}
