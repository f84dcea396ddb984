// Package sitebuild crawls the CMS and turns the result into the routing cache, sitemap and
// redirect list that the site is deployed with.
package sitebuild

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/toothbrush/site-routes/routing"
	"go.uber.org/zap"
)

// Builder runs one generation.  With Offline set the crawler is never consulted and the graph comes
// from the snapshot in StorePath instead.
type Builder struct {
	Crawler   *Crawler
	StorePath string
	OutputDir string
	BaseURL   string
	Offline   bool
	DryRun    bool

	// Space and Environment are recorded in the snapshot.
	Space       string
	Environment string

	Logger *zap.Logger
	Now    func() time.Time
}

// Report summarises a build.
type Report struct {
	BuildID   string
	Routes    int
	Dropped   []routing.DroppedRoute
	Redirects int
	Artifacts Artifacts
	Written   bool
}

func (b *Builder) Build(ctx context.Context) (Report, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	graph, err := b.contentGraph(ctx, logger, now)
	if err != nil {
		return Report{}, err
	}

	assembler := routing.Assembler{
		Logger:     logger.Named("routing"),
		Now:        now,
		NewBuildID: func() string { return uuid.NewString() },
	}
	result := assembler.Assemble(graph)
	redirects := routing.InferRedirects(result.Table)

	artifacts, err := renderArtifacts(result.Table, redirects, b.BaseURL)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		BuildID:   result.Table.BuildID,
		Routes:    result.Table.Len(),
		Dropped:   result.Dropped,
		Redirects: len(redirects),
		Artifacts: artifacts,
	}

	if b.DryRun {
		logger.Info("dry run, not writing artifacts",
			zap.String("build", report.BuildID),
			zap.Int("routes", report.Routes),
			zap.Int("redirects", report.Redirects))
		return report, nil
	}

	if err := artifacts.Write(b.OutputDir); err != nil {
		return Report{}, err
	}
	report.Written = true

	logger.Info("wrote site artifacts",
		zap.String("build", report.BuildID),
		zap.String("output", b.OutputDir),
		zap.Int("routes", report.Routes),
		zap.Int("dropped", len(report.Dropped)),
		zap.Int("redirects", report.Redirects))
	return report, nil
}

func (b *Builder) contentGraph(ctx context.Context, logger *zap.Logger, now func() time.Time) (routing.ContentGraph, error) {
	if b.Offline {
		snap, err := ReadSnapshot(b.StorePath)
		if err != nil {
			return routing.ContentGraph{}, err
		}
		logger.Info("using content snapshot",
			zap.String("store", b.StorePath),
			zap.Time("fetched", snap.FetchedAt))
		return snap.Graph, nil
	}

	if b.Crawler == nil {
		return routing.ContentGraph{}, fmt.Errorf("sitebuild: no crawler configured and not offline")
	}
	if b.Crawler.Logger == nil {
		b.Crawler.Logger = logger.Named("crawler")
	}

	entries, err := b.Crawler.Crawl(ctx)
	if err != nil {
		return routing.ContentGraph{}, err
	}
	graph := GraphFromEntries(entries)

	if b.StorePath != "" && !b.DryRun {
		err := WriteSnapshot(b.StorePath, Snapshot{
			FetchedAt:   now().UTC(),
			Space:       b.Space,
			Environment: b.Environment,
			Graph:       graph,
		})
		if err != nil {
			return routing.ContentGraph{}, err
		}
		logger.Debug("saved content snapshot", zap.String("store", b.StorePath))
	}

	return graph, nil
}
