package routing

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)

func testAssembler(t *testing.T) *Assembler {
	return &Assembler{
		Logger: zaptest.NewLogger(t),
		Now:    func() time.Time { return fixedNow },
	}
}

func TestAssembleHomepage(t *testing.T) {
	result := testAssembler(t).Assemble(ContentGraph{})

	require.Equal(t, 1, result.Table.Len())
	home, ok := result.Table.Get("/")
	require.True(t, ok)
	assert.Equal(t, KindPage, home.ContentType)
	assert.Equal(t, "homepage", home.ContentID)
	assert.Equal(t, 1.0, home.Priority)
	assert.Equal(t, ChangeDaily, home.ChangeFrequency)
	assert.Equal(t, fixedNow, result.Table.GeneratedAt)
	assert.Equal(t, TableVersion, result.Table.Version)
}

func TestAssembleStandalone(t *testing.T) {
	graph := ContentGraph{
		Pages:     []ContentNode{{ID: "pg", Slug: "about", Title: "About", Kind: KindPage}},
		Products:  []ContentNode{{ID: "pr", Slug: "battery", Title: "Battery", Kind: KindProduct}},
		Services:  []ContentNode{{ID: "sv", Slug: "maintenance", Title: "Maintenance", Kind: KindService}},
		Solutions: []ContentNode{{ID: "so", Slug: "microgrids", Title: "Microgrids", Kind: KindSolution}},
	}

	table := testAssembler(t).Assemble(graph).Table

	tests := []struct {
		path     string
		kind     Kind
		priority float64
		freq     ChangeFrequency
	}{
		{"/about", KindPage, 0.8, ChangeWeekly},
		{"/battery", KindProduct, 0.7, ChangeMonthly},
		{"/maintenance", KindService, 0.6, ChangeMonthly},
		{"/microgrids", KindSolution, 0.7, ChangeMonthly},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, ok := table.Get(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.kind, r.ContentType)
			assert.Equal(t, tt.priority, r.Priority)
			assert.Equal(t, tt.freq, r.ChangeFrequency)
			assert.False(t, r.IsNested)
			assert.Empty(t, r.AncestorChain)
		})
	}
	assert.Equal(t, []string{"/", "/about", "/battery", "/maintenance", "/microgrids"}, table.Paths())
}

func TestAssemblePostRouting(t *testing.T) {
	graph := ContentGraph{
		Posts: []ContentNode{
			{ID: "post-1", Slug: "annual-report", Title: "Annual Report", Kind: KindPost, Categories: []string{"Investor Relations"}},
			{ID: "post-2", Slug: "hello", Title: "Hello", Kind: KindPost},
			{ID: "post-3", Slug: "q3", Title: "Q3", Kind: KindPost, Categories: []string{"R&D News!", "ignored"}},
		},
	}

	table := testAssembler(t).Assemble(graph).Table

	r, ok := table.Get("/post/investor-relations/annual-report")
	require.True(t, ok)
	assert.Equal(t, KindPost, r.ContentType)
	assert.Equal(t, "post-1", r.ContentID)
	assert.Equal(t, 0.6, r.Priority)
	assert.Equal(t, ChangeWeekly, r.ChangeFrequency)
	assert.True(t, r.IsNested)

	assert.True(t, table.Has("/post/general/hello"))
	assert.True(t, table.Has("/post/rd-news/q3"))
}

func TestAssembleNestedPageList(t *testing.T) {
	solutions := pageList("sol", "solutions", "Solutions",
		ContentNode{ID: "gs", Slug: "grid-scale", Title: "Grid Scale", Kind: KindPage})
	graph := ContentGraph{
		Pages:     []ContentNode{{ID: "gs", Slug: "grid-scale", Title: "Grid Scale", Kind: KindPage}},
		PageLists: []PageListContainer{solutions},
	}

	table := testAssembler(t).Assemble(graph).Table

	assert.False(t, table.Has("/grid-scale"), "contained pages are not placed at the root")

	r, ok := table.Get("/solutions/grid-scale")
	require.True(t, ok)
	assert.Equal(t, KindPage, r.ContentType)
	assert.True(t, r.IsNested)
	assert.Equal(t, 0.7, r.Priority)
	assert.Equal(t, ChangeWeekly, r.ChangeFrequency)
	assert.Equal(t, []Ancestor{{ID: "sol", Slug: "solutions", Title: "Solutions"}}, r.AncestorChain)

	list, ok := table.Get("/solutions")
	require.True(t, ok)
	assert.Equal(t, KindPageList, list.ContentType)
	assert.False(t, list.IsNested)
	assert.Equal(t, 0.8, list.Priority)
}

func TestAssembleCollapsesDuplicateSegments(t *testing.T) {
	inner := pageList("svc-inner", "services", "Services",
		ContentNode{ID: "p1", Slug: "installation", Title: "Installation", Kind: KindService})
	outer := pageList("svc-outer", "services", "Services", ref(inner))

	table := testAssembler(t).Assemble(ContentGraph{PageLists: []PageListContainer{outer, inner}}).Table

	r, ok := table.Get("/services/installation")
	require.True(t, ok)
	assert.Equal(t, 0.6, r.Priority)
	assert.Equal(t, ChangeMonthly, r.ChangeFrequency)
	assert.Len(t, r.AncestorChain, 2)

	for _, p := range table.Paths() {
		assert.NotContains(t, p, "services/services")
	}
}

func TestAssembleChildBranches(t *testing.T) {
	rootless := pageList("rootless", "", "No slug",
		ContentNode{ID: "c1", Slug: "careers", Title: "Careers", Kind: KindPage})
	docs := pageList("docs", "docs", "Docs",
		ContentNode{ID: "c2", Slug: "guides/setup", Title: "Setup", Kind: KindPage},
		ContentNode{ID: "c3", Title: "Missing slug", Kind: KindPage},
		ContentNode{ID: "c4", Title: "Partner site", Kind: KindExternalPage, Link: "https://partner.example"},
		ContentNode{ID: "c5", Slug: "faq", Title: "FAQ", Kind: Kind("Widget")},
		ContentNode{ID: "c6", Slug: "news", Title: "News", Kind: KindPost},
	)

	table := testAssembler(t).Assemble(ContentGraph{PageLists: []PageListContainer{rootless, docs}}).Table

	careers, ok := table.Get("/careers")
	require.True(t, ok, "children of a slug-less container sit at the root")
	assert.Empty(t, careers.AncestorChain)

	setup, ok := table.Get("/guides/setup")
	require.True(t, ok, "pre-composed slugs are used verbatim")
	assert.True(t, setup.IsNested)
	assert.Empty(t, setup.AncestorChain)

	faq, ok := table.Get("/docs/faq")
	require.True(t, ok)
	assert.Equal(t, 0.6, faq.Priority)
	assert.Equal(t, ChangeMonthly, faq.ChangeFrequency)

	news, ok := table.Get("/docs/news")
	require.True(t, ok)
	assert.Equal(t, ChangeWeekly, news.ChangeFrequency)

	for _, r := range table.Routes() {
		assert.NotEqual(t, "c3", r.ContentID)
		assert.NotEqual(t, "c4", r.ContentID)
	}
}

func TestAssembleLastWriteWins(t *testing.T) {
	graph := ContentGraph{
		Pages:     []ContentNode{{ID: "page-offers", Slug: "offers", Title: "Offers page", Kind: KindPage}},
		Solutions: []ContentNode{{ID: "sol-offers", Slug: "offers", Title: "Offers solution", Kind: KindSolution}},
	}

	table := testAssembler(t).Assemble(graph).Table

	require.Equal(t, 2, table.Len())
	r, ok := table.Get("/offers")
	require.True(t, ok)
	assert.Equal(t, "sol-offers", r.ContentID)
	assert.Equal(t, KindSolution, r.ContentType)
	assert.Equal(t, []string{"/", "/offers"}, table.Paths())
}

func TestAssembleServiceAfterSolution(t *testing.T) {
	graph := ContentGraph{
		Services:  []ContentNode{{ID: "svc-grid", Slug: "grid", Title: "Grid service", Kind: KindService}},
		Solutions: []ContentNode{{ID: "sol-grid", Slug: "grid", Title: "Grid solution", Kind: KindSolution}},
	}

	table := testAssembler(t).Assemble(graph).Table

	r, ok := table.Get("/grid")
	require.True(t, ok)
	assert.Equal(t, "svc-grid", r.ContentID)
	assert.Equal(t, KindService, r.ContentType)
	assert.Equal(t, 0.6, r.Priority)
}

func TestAssembleDropsMalformedRoutes(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	a := &Assembler{Logger: zap.New(core), Now: func() time.Time { return fixedNow }}

	graph := ContentGraph{
		Pages: []ContentNode{
			{ID: "ok", Slug: "ok", Kind: KindPage},
			{ID: "undef", Slug: "undefined", Kind: KindPage},
			{ID: "slash", Slug: "/leading", Kind: KindPage},
		},
		Posts: []ContentNode{{ID: "sym", Slug: "x", Kind: KindPost, Categories: []string{"???"}}},
	}

	result := a.Assemble(graph)

	assert.Equal(t, []string{"/", "/ok"}, result.Table.Paths())
	require.Len(t, result.Dropped, 3)
	assert.ErrorIs(t, result.Dropped[0].Reason, ErrUndefinedSegment)
	assert.ErrorIs(t, result.Dropped[1].Reason, ErrEmptySegment)
	assert.Equal(t, "/post//x", result.Dropped[2].Route.Path)
	assert.Equal(t, 3, logs.FilterMessage("dropping malformed route").Len())
}

func TestAssembleIdempotent(t *testing.T) {
	graph := randomGraph(rand.New(rand.NewSource(7)), 40)

	first, err := json.Marshal(testAssembler(t).Assemble(graph).Table)
	require.NoError(t, err)
	second, err := json.Marshal(testAssembler(t).Assemble(graph).Table)
	require.NoError(t, err)

	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("assembling twice differs (-first +second):\n%s", diff)
	}
}

var wellFormedPath = regexp.MustCompile(`^/([^/]+(/[^/]+)*)?$`)

func TestAssembleNeverEmitsMalformedPaths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		graph := randomGraph(rng, 30)
		result := (&Assembler{Now: func() time.Time { return fixedNow }}).Assemble(graph)

		seen := map[string]bool{}
		for _, r := range result.Table.Routes() {
			assert.Regexp(t, wellFormedPath, r.Path)
			assert.NotContains(t, r.Path, "undefined")
			assert.False(t, seen[r.Path], "duplicate path %s", r.Path)
			seen[r.Path] = true
		}
		for _, d := range result.Dropped {
			assert.Error(t, ValidatePath(d.Route.Path))
		}
	}
}

var slugPool = []string{
	"", "about", "services", "services", "undefined", "a/b", "/lead", "trail/", "x", "grid-scale",
	"news", "team", "case", "about", "solutions",
}

var kindPool = []Kind{KindPage, KindProduct, KindService, KindSolution, KindPost, KindExternalPage, KindPageList}

// randomGraph builds a messy graph: duplicate slugs, nested and cyclic page lists, broken slugs.
func randomGraph(rng *rand.Rand, size int) ContentGraph {
	var g ContentGraph
	pick := func() string { return slugPool[rng.Intn(len(slugPool))] }

	for i := 0; i < size; i++ {
		node := ContentNode{
			ID:    fmt.Sprintf("n%d", i),
			Slug:  pick(),
			Title: strings.ToUpper(pick()),
			Kind:  kindPool[rng.Intn(len(kindPool))],
		}
		switch node.Kind {
		case KindPage:
			g.Pages = append(g.Pages, node)
		case KindProduct:
			g.Products = append(g.Products, node)
		case KindService:
			g.Services = append(g.Services, node)
		case KindSolution:
			g.Solutions = append(g.Solutions, node)
		case KindPost:
			node.Categories = []string{pick()}
			g.Posts = append(g.Posts, node)
		case KindPageList:
			g.PageLists = append(g.PageLists, PageListContainer{ContentNode: node})
		}
	}

	if len(g.PageLists) == 0 {
		return g
	}
	for i := 0; i < size; i++ {
		target := rng.Intn(len(g.PageLists))
		child := ContentNode{
			ID:   fmt.Sprintf("n%d", rng.Intn(size)),
			Slug: pick(),
			Kind: kindPool[rng.Intn(len(kindPool))],
		}
		g.PageLists[target].Children = append(g.PageLists[target].Children, child)
	}
	return g
}
