package sitebuild

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toothbrush/site-routes/routing"
)

const (
	RoutingCacheFile = "routing-cache.json"
	SitemapFile      = "sitemap.xml"
	RedirectsFile    = "redirects.json"
)

// Artifacts are the rendered outputs of one build.
type Artifacts struct {
	RoutingCache []byte
	Sitemap      []byte
	Redirects    []byte
}

func renderArtifacts(table *routing.RoutingTable, redirects []routing.Redirect, baseURL string) (Artifacts, error) {
	cache, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return Artifacts{}, fmt.Errorf("sitebuild: couldn't render routing cache: %w", err)
	}

	sitemap, err := routing.RenderSitemap(table, baseURL)
	if err != nil {
		return Artifacts{}, fmt.Errorf("sitebuild: couldn't render sitemap: %w", err)
	}

	redirectsJSON, err := json.MarshalIndent(redirects, "", "  ")
	if err != nil {
		return Artifacts{}, fmt.Errorf("sitebuild: couldn't render redirects: %w", err)
	}

	return Artifacts{
		RoutingCache: append(cache, '\n'),
		Sitemap:      sitemap,
		Redirects:    append(redirectsJSON, '\n'),
	}, nil
}

// Write puts the artifacts in dir, creating it if need be.
func (a Artifacts) Write(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("sitebuild: couldn't create directory %s: %w", dir, err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{RoutingCacheFile, a.RoutingCache},
		{SitemapFile, a.Sitemap},
		{RedirectsFile, a.Redirects},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.data); err != nil {
			return err
		}
	}
	return nil
}

// ReadRoutingTable loads a routing cache written by a previous build.
func ReadRoutingTable(dir string) (*routing.RoutingTable, error) {
	fullPath := filepath.Join(dir, RoutingCacheFile)
	source, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("sitebuild: couldn't read file %s: %w", fullPath, err)
	}

	var table routing.RoutingTable
	if err := json.Unmarshal(source, &table); err != nil {
		return nil, fmt.Errorf("sitebuild: couldn't parse %s: %w", fullPath, err)
	}
	return &table, nil
}

// writeFile replaces path in one go, so a failed build never leaves half an artifact behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("sitebuild: couldn't create file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sitebuild: couldn't write to file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sitebuild: couldn't write to file %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("sitebuild: couldn't set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("sitebuild: couldn't move file into place at %s: %w", path, err)
	}
	return nil
}
