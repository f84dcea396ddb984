package sitebuild

import (
	"github.com/toothbrush/site-routes/contentful"
	"github.com/toothbrush/site-routes/routing"
)

// toNode uses the entry's __typename as its kind when there is one.  Types we don't know keep their
// name and get the default sitemap placement.
func toNode(e contentful.Entry, fallback routing.Kind) routing.ContentNode {
	kind := fallback
	if e.Typename != "" {
		kind = routing.Kind(e.Typename)
	}
	return routing.ContentNode{
		ID:         e.Sys.ID,
		Slug:       e.Slug,
		Title:      e.Title,
		Kind:       kind,
		Categories: e.Categories,
		Link:       e.Link,
	}
}

func toNodes(entries []contentful.Entry, kind routing.Kind) []routing.ContentNode {
	nodes := make([]routing.ContentNode, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, toNode(e, kind))
	}
	return nodes
}

// GraphFromEntries assembles the crawled collections into the resolver's input.
func GraphFromEntries(entries map[contentful.Collection][]contentful.Entry) routing.ContentGraph {
	graph := routing.ContentGraph{
		Pages:     toNodes(entries[contentful.PageCollection], routing.KindPage),
		Products:  toNodes(entries[contentful.ProductCollection], routing.KindProduct),
		Services:  toNodes(entries[contentful.ServiceCollection], routing.KindService),
		Solutions: toNodes(entries[contentful.SolutionCollection], routing.KindSolution),
		Posts:     toNodes(entries[contentful.PostCollection], routing.KindPost),
	}

	for _, e := range entries[contentful.PageListCollection] {
		container := routing.PageListContainer{
			ContentNode: toNode(e, routing.KindPageList),
		}
		for _, child := range e.Children() {
			container.Children = append(container.Children, toNode(child, routing.KindPage))
		}
		graph.PageLists = append(graph.PageLists, container)
	}

	return graph
}
