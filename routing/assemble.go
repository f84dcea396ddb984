package routing

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Assembler turns a content graph into a routing table.
type Assembler struct {
	Logger *zap.Logger

	// Now stamps GeneratedAt; defaults to time.Now.
	Now func() time.Time
	// NewBuildID labels the table; optional.
	NewBuildID func() string
}

// Result is what one assembler run produces.
type Result struct {
	Table   *RoutingTable
	Dropped []DroppedRoute
}

// Assemble places every node of graph, later placements overwriting earlier ones on the same path,
// then drops malformed paths.
func (a *Assembler) Assemble(graph ContentGraph) Result {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	table := NewRoutingTable(now())
	if a.NewBuildID != nil {
		table.BuildID = a.NewBuildID()
	}
	containment := NewContainment(graph.PageLists)

	set := func(route Route) {
		if route.AncestorChain == nil {
			route.AncestorChain = []Ancestor{}
		}
		if table.Set(route) {
			logger.Debug("route overwritten by later placement",
				zap.String("path", route.Path),
				zap.String("contentId", route.ContentID))
		}
	}

	set(Route{
		Path:            "/",
		ContentType:     KindPage,
		ContentID:       "homepage",
		Title:           "Home",
		Priority:        1.0,
		ChangeFrequency: ChangeDaily,
	})

	standalone := func(nodes []ContentNode, kind Kind, priority float64, freq ChangeFrequency) {
		for _, node := range nodes {
			if containment.IsContained(node.ID) {
				continue
			}
			if strings.TrimSpace(node.Slug) == "" {
				logger.Warn("skipping content without slug",
					zap.String("contentType", string(kind)),
					zap.String("contentId", node.ID))
				continue
			}
			set(Route{
				Path:            "/" + node.Slug,
				ContentType:     kind,
				ContentID:       node.ID,
				Title:           node.Title,
				IsNested:        strings.Contains(node.Slug, "/"),
				Priority:        priority,
				ChangeFrequency: freq,
			})
		}
	}

	standalone(graph.Pages, KindPage, 0.8, ChangeWeekly)
	standalone(graph.Products, KindProduct, 0.7, ChangeMonthly)
	standalone(graph.Solutions, KindSolution, 0.7, ChangeMonthly)
	standalone(graph.Services, KindService, 0.6, ChangeMonthly)

	for _, post := range graph.Posts {
		if containment.IsContained(post.ID) {
			continue
		}
		if strings.TrimSpace(post.Slug) == "" {
			logger.Warn("skipping post without slug", zap.String("contentId", post.ID))
			continue
		}
		category := "general"
		if len(post.Categories) > 0 && post.Categories[0] != "" {
			category = post.Categories[0]
		}
		set(Route{
			Path:            "/post/" + cleanCategory(category) + "/" + post.Slug,
			ContentType:     KindPost,
			ContentID:       post.ID,
			Title:           post.Title,
			IsNested:        true,
			Priority:        0.6,
			ChangeFrequency: ChangeWeekly,
		})
	}

	for _, container := range graph.PageLists {
		if strings.TrimSpace(container.Slug) == "" {
			continue
		}
		chain := containment.AncestorChain(container.ID)
		set(Route{
			Path:            joinSegments(append(slugsOf(chain), container.Slug)...),
			ContentType:     KindPageList,
			ContentID:       container.ID,
			Title:           container.Title,
			AncestorChain:   chain,
			IsNested:        len(chain) > 0,
			Priority:        0.8,
			ChangeFrequency: ChangeWeekly,
		})
	}

	for _, container := range graph.PageLists {
		a.placeChildren(container, containment, set, logger)
	}

	dropped := table.Prune(logger)
	logger.Info("assembled routing table",
		zap.Int("routes", table.Len()),
		zap.Int("dropped", len(dropped)))

	return Result{Table: table, Dropped: dropped}
}

func (a *Assembler) placeChildren(container PageListContainer, containment *Containment, set func(Route), logger *zap.Logger) {
	containerSlug := strings.TrimSpace(container.Slug)

	var containerChain []Ancestor
	if containerSlug != "" {
		containerChain = containment.AncestorChain(container.ID)
	}

	for _, child := range container.Children {
		if child.Kind == KindExternalPage {
			continue
		}
		if strings.TrimSpace(child.Slug) == "" {
			logger.Debug("skipping page list child without slug",
				zap.String("pageList", container.ID),
				zap.String("contentId", child.ID))
			continue
		}

		route := Route{
			ContentType: child.Kind,
			ContentID:   child.ID,
			Title:       child.Title,
		}
		p := placementFor(child.Kind)
		route.Priority, route.ChangeFrequency = p.priority, p.changeFreq

		switch {
		case strings.Contains(child.Slug, "/"):
			// editor already spelled out the full path; ancestry isn't worked out here
			route.Path = "/" + collapseRepeats(child.Slug)
			route.IsNested = true
		case containerSlug == "":
			route.Path = joinSegments(child.Slug)
		default:
			chain := append(append([]Ancestor{}, containerChain...), Ancestor{
				ID:    container.ID,
				Slug:  container.Slug,
				Title: titleOrSlug(container.ContentNode),
			})
			route.Path = joinSegments(append(slugsOf(chain), child.Slug)...)
			route.AncestorChain = chain
			route.IsNested = true
		}

		set(route)
	}
}

func slugsOf(chain []Ancestor) []string {
	slugs := make([]string, 0, len(chain)+1)
	for _, a := range chain {
		slugs = append(slugs, a.Slug)
	}
	return slugs
}

func titleOrSlug(node ContentNode) string {
	if node.Title != "" {
		return node.Title
	}
	return node.Slug
}
