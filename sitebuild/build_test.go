package sitebuild

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/site-routes/contentful"
	"github.com/toothbrush/site-routes/routing"
	"go.uber.org/zap/zaptest"
)

var fixedNow = time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)

func siteContent() map[contentful.Collection][]contentful.Entry {
	return map[contentful.Collection][]contentful.Entry{
		contentful.PageCollection: {
			{Typename: "Page", Sys: contentful.Sys{ID: "about"}, Slug: "about", Title: "About us"},
			{Typename: "Page", Sys: contentful.Sys{ID: "grid"}, Slug: "grid-scale", Title: "Grid Scale"},
		},
		contentful.PostCollection: {
			{Typename: "Post", Sys: contentful.Sys{ID: "post1"}, Slug: "hello", Title: "Hello", Categories: []string{"Company News"}},
		},
		contentful.PageListCollection: {
			{
				Typename: "PageList", Sys: contentful.Sys{ID: "solutions"}, Slug: "solutions", Title: "Solutions",
				PagesCollection: &contentful.EntryCollection{Items: []contentful.Entry{
					{Typename: "Page", Sys: contentful.Sys{ID: "grid"}, Slug: "grid-scale", Title: "Grid Scale"},
				}},
			},
		},
	}
}

func TestGraphFromEntries(t *testing.T) {
	graph := GraphFromEntries(siteContent())

	require.Len(t, graph.Pages, 2)
	assert.Equal(t, routing.KindPage, graph.Pages[0].Kind)
	require.Len(t, graph.Posts, 1)
	assert.Equal(t, []string{"Company News"}, graph.Posts[0].Categories)
	assert.Empty(t, graph.Products)

	require.Len(t, graph.PageLists, 1)
	list := graph.PageLists[0]
	assert.Equal(t, routing.KindPageList, list.Kind)
	require.Len(t, list.Children, 1)
	assert.Equal(t, "grid", list.Children[0].ID)
}

func TestToNodeKind(t *testing.T) {
	assert.Equal(t, routing.KindExternalPage,
		toNode(contentful.Entry{Typename: "ExternalPage", Link: "https://partner.example"}, routing.KindPage).Kind)
	assert.Equal(t, routing.KindProduct,
		toNode(contentful.Entry{Sys: contentful.Sys{ID: "x"}}, routing.KindProduct).Kind)
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Snapshot{
		FetchedAt:   fixedNow,
		Space:       "space1",
		Environment: "master",
		Graph:       GraphFromEntries(siteContent()),
	}
	require.NoError(t, WriteSnapshot(dir, want))

	got, err := ReadSnapshot(dir)
	require.NoError(t, err)
	assert.True(t, want.FetchedAt.Equal(got.FetchedAt))
	if diff := cmp.Diff(want.Graph, got.Graph, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot graph mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "space1", got.Space)
}

func TestReadSnapshotMissing(t *testing.T) {
	_, err := ReadSnapshot(t.TempDir())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestWriteSnapshotNeedsDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	err := WriteSnapshot(file, Snapshot{})
	assert.ErrorContains(t, err, "not a directory")
}

func TestBuildOnline(t *testing.T) {
	store := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")

	b := &Builder{
		Crawler:     &Crawler{Source: newFakeCMS(siteContent()), Workers: 2},
		StorePath:   store,
		OutputDir:   out,
		BaseURL:     "https://www.example.com/",
		Space:       "space1",
		Environment: "master",
		Logger:      zaptest.NewLogger(t),
		Now:         func() time.Time { return fixedNow },
	}

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Written)
	_, err = uuid.Parse(report.BuildID)
	assert.NoError(t, err, "build id should be a uuid")

	table, err := ReadRoutingTable(out)
	require.NoError(t, err)
	assert.Equal(t, report.Routes, table.Len())
	assert.Equal(t, report.BuildID, table.BuildID)
	assert.True(t, table.Has("/about"))
	assert.True(t, table.Has("/solutions/grid-scale"))
	assert.False(t, table.Has("/grid-scale"), "contained pages are only reachable nested")
	assert.True(t, table.Has("/post/company-news/hello"))

	sitemap, err := os.ReadFile(filepath.Join(out, SitemapFile))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "<loc>https://www.example.com/solutions/grid-scale</loc>")
	assert.Contains(t, string(sitemap), "<lastmod>2024-05-02</lastmod>")

	var redirects []routing.Redirect
	raw, err := os.ReadFile(filepath.Join(out, RedirectsFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &redirects))
	assert.Contains(t, redirects, routing.Redirect{Source: "/grid-scale", Destination: "/solutions/grid-scale", Permanent: false})
	assert.Equal(t, report.Redirects, len(redirects))

	snap, err := ReadSnapshot(store)
	require.NoError(t, err)
	if diff := cmp.Diff(GraphFromEntries(siteContent()), snap.Graph, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot graph mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOfflineMatchesOnline(t *testing.T) {
	store := t.TempDir()
	require.NoError(t, WriteSnapshot(store, Snapshot{FetchedAt: fixedNow, Graph: GraphFromEntries(siteContent())}))

	offline := &Builder{
		StorePath: store,
		BaseURL:   "https://www.example.com",
		Offline:   true,
		DryRun:    true,
		Logger:    zaptest.NewLogger(t),
		Now:       func() time.Time { return fixedNow },
	}
	online := &Builder{
		Crawler: &Crawler{Source: newFakeCMS(siteContent())},
		BaseURL: "https://www.example.com",
		DryRun:  true,
		Logger:  zaptest.NewLogger(t),
		Now:     func() time.Time { return fixedNow },
	}

	a, err := offline.Build(context.Background())
	require.NoError(t, err)
	b, err := online.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, string(a.Artifacts.Sitemap), string(b.Artifacts.Sitemap))
	assert.Equal(t, string(a.Artifacts.Redirects), string(b.Artifacts.Redirects))
	assert.Equal(t, a.Routes, b.Routes)
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	store := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")

	b := &Builder{
		Crawler:   &Crawler{Source: newFakeCMS(siteContent())},
		StorePath: store,
		OutputDir: out,
		BaseURL:   "https://www.example.com",
		DryRun:    true,
		Logger:    zaptest.NewLogger(t),
	}
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Written)
	assert.NotEmpty(t, report.Artifacts.RoutingCache)

	assert.NoDirExists(t, out)
	assert.NoFileExists(t, filepath.Join(store, SnapshotFile))
}

func TestBuildOfflineWithoutSnapshot(t *testing.T) {
	b := &Builder{StorePath: t.TempDir(), BaseURL: "https://www.example.com", Offline: true}
	_, err := b.Build(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestBuildNeedsBaseURL(t *testing.T) {
	b := &Builder{Crawler: &Crawler{Source: newFakeCMS(siteContent())}, DryRun: true}
	_, err := b.Build(context.Background())
	assert.ErrorContains(t, err, "base URL")
}

func TestWriteArtifactsReplacesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Artifacts{RoutingCache: []byte("old"), Sitemap: []byte("old"), Redirects: []byte("old")}.Write(dir))
	require.NoError(t, Artifacts{RoutingCache: []byte("new"), Sitemap: []byte("<urlset/>"), Redirects: []byte("[]")}.Write(dir))

	got, err := os.ReadFile(filepath.Join(dir, RoutingCacheFile))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary files should be cleaned up")
}
