package contentful

import "fmt"

const entryFields = `__typename sys { id } slug title`

// MaxPageListChildren is how many children of a page list one query can return.  Contentful does
// not page nested collections inside a collection query, so a longer list can't be crawled whole.
const MaxPageListChildren = 100

// pageListChildren covers every type an editor can drop into a page list.
const pageListChildren = `
        __typename
        sys { id }
        ... on Page { slug title }
        ... on Product { slug title }
        ... on Service { slug title }
        ... on Solution { slug title }
        ... on Post { slug title categories }
        ... on PageList { slug title }
        ... on ExternalPage { title link }`

// query returns the GraphQL document for one window of collection c.
func (c Collection) query() (string, error) {
	var fields string
	switch c {
	case PageCollection, ProductCollection, ServiceCollection, SolutionCollection:
		fields = entryFields
	case PostCollection:
		fields = entryFields + ` categories`
	case PageListCollection:
		fields = entryFields + fmt.Sprintf(`
      pagesCollection(limit: %d) {
        total
        items {`, MaxPageListChildren) + pageListChildren + `
        }
      }`
	default:
		return "", fmt.Errorf("contentful: unknown collection %q", c)
	}

	return fmt.Sprintf(`query ($skip: Int!, $limit: Int!, $preview: Boolean) {
  %s(skip: $skip, limit: $limit, preview: $preview, order: sys_firstPublishedAt_ASC) {
    total
    skip
    limit
    items {
      %s
    }
  }
}`, c, fields), nil
}
