package contentful

// Collection names a top-level GraphQL collection field.
type Collection string

const (
	PageCollection     Collection = "pageCollection"
	PageListCollection Collection = "pageListCollection"
	ProductCollection  Collection = "productCollection"
	ServiceCollection  Collection = "serviceCollection"
	SolutionCollection Collection = "solutionCollection"
	PostCollection     Collection = "postCollection"
)

// Collections is every collection the site routes are built from, in crawl order.
var Collections = []Collection{
	PageCollection,
	ProductCollection,
	ServiceCollection,
	SolutionCollection,
	PostCollection,
	PageListCollection,
}

type Sys struct {
	ID string `json:"id"`
}

// Entry is the union of every entry shape we query.  Typename says which fields are filled in.
type Entry struct {
	Typename   string   `json:"__typename"`
	Sys        Sys      `json:"sys"`
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Link       string   `json:"link,omitempty"`
	Categories []string `json:"categories,omitempty"`

	// Only on PageList.
	PagesCollection *EntryCollection `json:"pagesCollection,omitempty"`
}

// EntryCollection is a nested collection of linked entries.
type EntryCollection struct {
	Total int     `json:"total"`
	Items []Entry `json:"items"`
}

// Children returns a page list's entries, or nil for anything else.
func (e Entry) Children() []Entry {
	if e.PagesCollection == nil {
		return nil
	}
	return e.PagesCollection.Items
}

// CollectionPage is one skip/limit window of a collection.
type CollectionPage struct {
	Total int     `json:"total"`
	Skip  int     `json:"skip"`
	Limit int     `json:"limit"`
	Items []Entry `json:"items"`
}

// Done reports whether this is the last window.
func (p CollectionPage) Done() bool {
	return len(p.Items) == 0 || p.Skip+len(p.Items) >= p.Total
}
