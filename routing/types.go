// Package routing turns the site content graph into a routing table, a sitemap and a set of
// inferred redirects.
package routing

// Kind discriminates the content types that can appear in the content graph, including the child
// entries of a page list.
type Kind string

const (
	KindPage         Kind = "Page"
	KindProduct      Kind = "Product"
	KindService      Kind = "Service"
	KindSolution     Kind = "Solution"
	KindPost         Kind = "Post"
	KindPageList     Kind = "PageList"
	KindExternalPage Kind = "ExternalPage"
)

// ContentNode is any addressable item in the CMS: a page, product, post and so on.  Slug may
// already contain '/' separators when an editor pre-composed a nested path.
type ContentNode struct {
	ID         string   `json:"id" yaml:"id"`
	Slug       string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	Title      string   `json:"title,omitempty" yaml:"title,omitempty"`
	Kind       Kind     `json:"kind" yaml:"kind"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"` // Post only
	Link       string   `json:"link,omitempty" yaml:"link,omitempty"`             // ExternalPage only
}

// PageListContainer groups other content.  Children are references only; the same node may be
// listed under several containers, and containers may (wrongly) contain each other.
type PageListContainer struct {
	ContentNode `yaml:",inline"`

	Children []ContentNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ContentGraph is everything the resolver needs, as fetched from the CMS.
type ContentGraph struct {
	Pages     []ContentNode       `json:"pages,omitempty" yaml:"pages,omitempty"`
	Products  []ContentNode       `json:"products,omitempty" yaml:"products,omitempty"`
	Services  []ContentNode       `json:"services,omitempty" yaml:"services,omitempty"`
	Solutions []ContentNode       `json:"solutions,omitempty" yaml:"solutions,omitempty"`
	Posts     []ContentNode       `json:"posts,omitempty" yaml:"posts,omitempty"`
	PageLists []PageListContainer `json:"pageLists,omitempty" yaml:"pageLists,omitempty"`
}

// Ancestor is one containing page list in a route's ancestor chain.
type Ancestor struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type ChangeFrequency string

const (
	ChangeAlways  ChangeFrequency = "always"
	ChangeHourly  ChangeFrequency = "hourly"
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
	ChangeYearly  ChangeFrequency = "yearly"
	ChangeNever   ChangeFrequency = "never"
)

// Route is one entry of the routing table.
type Route struct {
	Path            string          `json:"path"`
	ContentType     Kind            `json:"contentType"`
	ContentID       string          `json:"contentId"`
	Title           string          `json:"title"`
	AncestorChain   []Ancestor      `json:"ancestorChain"`
	IsNested        bool            `json:"isNested"`
	Priority        float64         `json:"priority"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
}

// Redirect maps a legacy short path onto its canonical nested path.
type Redirect struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Permanent   bool   `json:"permanent"`
}

type placement struct {
	priority   float64
	changeFreq ChangeFrequency
}

// placementFor returns sitemap ranking for a container child of the given kind.
func placementFor(kind Kind) placement {
	switch kind {
	case KindPage:
		return placement{0.7, ChangeWeekly}
	case KindProduct, KindSolution:
		return placement{0.7, ChangeMonthly}
	case KindService:
		return placement{0.6, ChangeMonthly}
	case KindPost:
		return placement{0.6, ChangeWeekly}
	case KindPageList:
		return placement{0.8, ChangeWeekly}
	case KindExternalPage:
		// never placed, but keep the switch exhaustive
		return placement{0.6, ChangeMonthly}
	default:
		return placement{0.6, ChangeMonthly}
	}
}
