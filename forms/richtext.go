package forms

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// richText is the part of a rich-text group the step detector cares about.
type richText struct {
	plain string
	title string
	html  string
}

func parseRichText(html string) (richText, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return richText{}, err
	}

	rt := richText{
		plain: strings.TrimSpace(doc.Text()),
		html:  html,
	}

	rt.title = strings.TrimSpace(doc.Find("h1, h2, h3, h4, h5, h6").First().Text())
	if rt.title == "" {
		doc.Find("p, div, span, strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			rt.title = strings.TrimSpace(s.Text())
			return rt.title == ""
		})
	}
	if rt.title == "" {
		rt.title = firstLine(rt.plain)
	}

	return rt, nil
}

// markdown renders the rich text as GitHub flavoured markdown, or plain text if the HTML can't be
// converted.
func (rt richText) markdown() string {
	converter := md.NewConverter("", true, nil)
	converter.Use(mdplugin.GitHubFlavored())
	out, err := converter.ConvertString(rt.html)
	if err != nil {
		return rt.plain
	}
	return strings.TrimSpace(out)
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
