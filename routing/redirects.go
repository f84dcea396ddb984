package routing

import (
	"regexp"
	"sort"
	"strings"
)

var allDigits = regexp.MustCompile(`^[0-9]+$`)

// InferRedirects derives "/last-segment" -> "/full/nested/path" redirects for nested routes, so
// that old short links keep working.  A redirect is only proposed when its source isn't a real
// route and the last segment is distinctive enough to be unambiguous.
func InferRedirects(table *RoutingTable) []Redirect {
	redirects := []Redirect{}
	seen := make(map[string]bool)

	for _, route := range table.Routes() {
		if route.Path == "/" {
			continue
		}
		segments := pathSegments(route.Path)
		if len(segments) < 2 {
			continue
		}
		last := segments[len(segments)-1]
		source := "/" + last

		if table.Has(source) || seen[source] {
			continue
		}
		if !distinctiveSegment(last) {
			continue
		}

		seen[source] = true
		redirects = append(redirects, Redirect{
			Source:      source,
			Destination: route.Path,
			Permanent:   false,
		})
	}

	sort.SliceStable(redirects, func(i, j int) bool {
		return redirects[i].Source < redirects[j].Source
	})

	return redirects
}

func distinctiveSegment(segment string) bool {
	if len(segment) <= 2 {
		return false
	}
	if allDigits.MatchString(segment) {
		return false
	}
	if strings.Contains(segment, "-case-study") || strings.Contains(segment, "-product") {
		return false
	}
	return true
}
