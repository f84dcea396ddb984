package sitebuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/toothbrush/site-routes/contentful"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// CollectionFetcher is the part of contentful.API the crawler needs.
type CollectionFetcher interface {
	FetchCollection(ctx context.Context, opts contentful.FetchCollectionQuery) (*contentful.CollectionPage, error)
}

const (
	defaultPageSize = 100
	maxRetries      = 3
	requestTimeout  = 15 * time.Second
)

// Crawler pulls every routable collection out of the CMS.
type Crawler struct {
	Source   CollectionFetcher
	Workers  int
	PageSize int
	Preview  bool

	Logger *zap.Logger
	// Progress bars are drawn here; nil hides them.
	Progress io.Writer

	mu      sync.Mutex
	windows map[window][]contentful.Entry
}

// window identifies one skip/limit page of a collection, so that results can be stitched back
// together in order no matter which worker fetched them.
type window struct {
	collection contentful.Collection
	skip       int
}

type job struct {
	query   contentful.FetchCollectionQuery
	retries int
}

type jobResult struct {
	collection contentful.Collection
	finished   bool
	itemsFound int
	followUp   *job
}

// Crawl fetches all of collections (contentful.Collections when empty) and returns the entries of
// each in CMS order.
func (c *Crawler) Crawl(ctx context.Context, collections ...contentful.Collection) (map[contentful.Collection][]contentful.Entry, error) {
	if len(collections) == 0 {
		collections = contentful.Collections
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.PageSize < 1 {
		c.PageSize = defaultPageSize
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	c.windows = make(map[window][]contentful.Entry)

	jobs := make([]job, 0, len(collections))
	for _, col := range collections {
		jobs = append(jobs, job{query: contentful.FetchCollectionQuery{
			Collection: col,
			Limit:      c.PageSize,
			Preview:    c.Preview,
		}})
	}

	c.Logger.Info("crawling collections",
		zap.Int("collections", len(jobs)),
		zap.Int("workers", c.Workers))
	if err := c.channelSoupRun(ctx, jobs, "collections"); err != nil {
		return nil, fmt.Errorf("sitebuild: crawl failed: %w", err)
	}

	return c.stitch(collections), nil
}

// stitch concatenates each collection's windows by skip, dropping entries that shifted into a
// later window while we were paging.
func (c *Crawler) stitch(collections []contentful.Collection) map[contentful.Collection][]contentful.Entry {
	keys := maps.Keys(c.windows)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].collection != keys[j].collection {
			return keys[i].collection < keys[j].collection
		}
		return keys[i].skip < keys[j].skip
	})

	out := make(map[contentful.Collection][]contentful.Entry, len(collections))
	for _, col := range collections {
		out[col] = []contentful.Entry{}
	}
	seen := map[contentful.Collection]map[string]bool{}
	for _, k := range keys {
		if seen[k.collection] == nil {
			seen[k.collection] = map[string]bool{}
		}
		for _, e := range c.windows[k] {
			if seen[k.collection][e.Sys.ID] {
				c.Logger.Debug("skipping duplicate entry",
					zap.String("collection", string(k.collection)),
					zap.String("id", e.Sys.ID))
				continue
			}
			seen[k.collection][e.Sys.ID] = true
			out[k.collection] = append(out[k.collection], e)
		}
	}
	return out
}

func (c *Crawler) performJob(ctx context.Context, j job) (jobResult, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	page, err := c.Source.FetchCollection(ctx, j.query)
	if err != nil {
		return jobResult{}, fmt.Errorf("sitebuild: failed fetching %s at skip %d: %w", j.query.Collection, j.query.Skip, err)
	}

	c.mu.Lock()
	c.windows[window{collection: j.query.Collection, skip: j.query.Skip}] = page.Items
	c.mu.Unlock()

	result := jobResult{
		collection: j.query.Collection,
		finished:   page.Done(),
		itemsFound: len(page.Items),
	}
	if result.finished {
		return result, nil
	}

	next := job{query: j.query}
	next.query.Skip = j.query.Skip + len(page.Items)
	result.followUp = &next
	return result, nil
}

func (c *Crawler) channelSoupRun(ctx context.Context, jobs []job, phaseName string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if len(jobs) == 0 {
		return nil
	}

	// Each job is replaced by at most one follow-up, so this never fills.
	jobQueue := make(chan job, len(jobs)+c.Workers)

	unitsOfWorkRemaining := int32(len(jobs))
	unitsOfWorkTotal := len(jobs)
	for _, j := range jobs {
		jobQueue <- j
	}

	results := make(chan jobResult, c.Workers*3)

	grp, gctx := errgroup.WithContext(ctx)

	workers := int32(c.Workers)
	for i := 0; i < c.Workers; i++ {
		grp.Go(func() error {
			for {
				select {
				case j, ok := <-jobQueue:
					if !ok {
						// Last one out closes the shop
						if atomic.AddInt32(&workers, -1) == 0 {
							close(results)
						}
						return nil
					}
					result, err := c.performJob(gctx, j)
					if err != nil {
						if errors.Is(err, contentful.ErrTruncatedChildren) {
							return err
						}
						if j.retries >= maxRetries {
							return fmt.Errorf("sitebuild: retries exceeded: %w", err)
						}
						j.retries++
						c.Logger.Warn("retrying collection window",
							zap.String("collection", string(j.query.Collection)),
							zap.Int("skip", j.query.Skip),
							zap.Int("attempt", j.retries),
							zap.Error(err))
						result = jobResult{
							collection: j.query.Collection,
							followUp:   &j,
						}
					}
					if result.followUp != nil {
						select {
						case jobQueue <- *result.followUp:
						case <-gctx.Done():
							return context.Cause(gctx)
						}
					} else if atomic.AddInt32(&unitsOfWorkRemaining, -1) == 0 {
						close(jobQueue)
					}

					select {
					case results <- result:
					case <-gctx.Done():
						return context.Cause(gctx)
					}

				case <-gctx.Done():
					return context.Cause(gctx)
				}
			}
		})
	}

	out := c.Progress
	if out == nil {
		out = io.Discard
	}
	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(out))

	bar := p.AddBar(int64(unitsOfWorkTotal),
		mpb.PrependDecorators(
			decor.Name(fmt.Sprintf("%s:", phaseName),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	grp.Go(func() error {
		for {
			select {
			case result, ok := <-results:
				if !ok {
					return nil
				}
				if result.finished {
					bar.Increment()
					c.Logger.Debug("collection complete", zap.String("collection", string(result.collection)))
				}

			case <-gctx.Done():
				return context.Cause(gctx)
			}
		}
	})

	err := grp.Wait()
	if err != nil {
		bar.Abort(false)
	}
	p.Wait()

	if err != nil {
		return fmt.Errorf("sitebuild: %s: %w", phaseName, err)
	}
	return nil
}
