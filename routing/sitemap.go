package routing

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// RenderSitemap serialises table as a sitemap 0.9 document, in table order.  baseURL is the
// public origin, e.g. "https://www.example.com".
func RenderSitemap(table *RoutingTable, baseURL string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("routing: sitemap needs a base URL")
	}

	lastMod := table.GeneratedAt.Format("2006-01-02")
	set := urlSet{XMLNS: sitemapNamespace}

	for _, route := range table.Routes() {
		loc := base + route.Path
		if route.Path == "/" {
			loc = base
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        loc,
			LastMod:    lastMod,
			ChangeFreq: string(route.ChangeFrequency),
			Priority:   fmt.Sprintf("%.1f", route.Priority),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("routing: couldn't render sitemap: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
