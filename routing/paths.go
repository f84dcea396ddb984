package routing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrBlankPath        = errors.New("routing: path is blank")
	ErrNotAbsolute      = errors.New("routing: path does not start with '/'")
	ErrEmptySegment     = errors.New("routing: path contains an empty segment")
	ErrUndefinedSegment = errors.New("routing: path contains 'undefined'")
)

// ValidatePath reports why path can't be served, or nil if it's fine.
func ValidatePath(path string) error {
	switch {
	case strings.TrimSpace(path) == "":
		return ErrBlankPath
	case path == "//", strings.Contains(path, "//"):
		return fmt.Errorf("%w: %q", ErrEmptySegment, path)
	case path != "/" && strings.HasSuffix(path, "/"):
		return fmt.Errorf("%w: trailing slash in %q", ErrEmptySegment, path)
	case strings.HasSuffix(path, "/undefined"), strings.Contains(path, "undefined"):
		return fmt.Errorf("%w: %q", ErrUndefinedSegment, path)
	case !strings.HasPrefix(path, "/"):
		return fmt.Errorf("%w: %q", ErrNotAbsolute, path)
	}
	return nil
}

var nonCategoryChars = regexp.MustCompile(`[^a-z0-9-]`)

// cleanCategory turns a free-text post category into a path segment, e.g. "Investor Relations"
// becomes "investor-relations".
func cleanCategory(category string) string {
	str := strings.ToLower(category)
	str = strings.ReplaceAll(str, " ", "-")
	return nonCategoryChars.ReplaceAllString(str, "")
}

// joinSegments builds an absolute path from slugs, collapsing runs of identical adjacent
// segments.  Empty slugs are kept as empty segments so that validation can reject them.
func joinSegments(slugs ...string) string {
	joined := strings.Join(slugs, "/")
	return "/" + collapseRepeats(joined)
}

// collapseRepeats turns "services/services/x" into "services/x".
func collapseRepeats(path string) string {
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for i, seg := range segments {
		if i > 0 && seg == segments[i-1] && seg != "" {
			continue
		}
		out = append(out, seg)
	}
	return strings.Join(out, "/")
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
