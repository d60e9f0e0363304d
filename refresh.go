package shopfront

import (
	"context"
	"sync"

	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/errors"
	"github.com/petalworks/shopfront/pkg/logging"
)

// Failure notice labels for the two concurrent fetches.
const (
	actionLoadCategories = "載入類別資料"
	actionLoadProducts   = "載入商品資料"
)

// Refresh runs one aggregation cycle: fetch categories and visible products
// concurrently, normalize both product provenances, merge, sort, and publish
// a fresh Result.
//
// The cycle is all-or-nothing. If either fetch fails the previous Result is
// discarded rather than retained, LastError carries a display message, and
// no partial catalog is ever published. Overlapping calls are safe: each
// cycle gets a generation number and only the most recently started one may
// publish, so a slow stale refresh never clobbers a newer catalog.
func (c *client) Refresh(ctx context.Context) error {
	if c.source == nil {
		err := errNoSource()
		c.mu.Lock()
		c.loading = false
		c.lastError = err.Error()
		c.result = nil
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.lastError = ""
	c.mu.Unlock()

	result, err := c.aggregate(ctx)
	if err != nil {
		c.fail(gen, err)
		return err
	}

	c.publish(gen, result)
	return nil
}

// aggregate performs the fetch/normalize/merge pipeline without touching
// shared state.
func (c *client) aggregate(ctx context.Context) (catalog.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.fetchTimeout)
	defer cancel()

	log := logging.Ctx(ctx)

	var (
		wg            sync.WaitGroup
		categoryNames []string
		remote        []catalog.Product
		catErr        error
		prodErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cats, err := c.source.ListCategories(ctx)
		if err != nil {
			catErr = errors.NewOperationError(actionLoadCategories, err)
			return
		}
		categoryNames = make([]string, 0, len(cats))
		for _, cat := range cats {
			categoryNames = append(categoryNames, cat.Name)
		}
	}()
	go func() {
		defer wg.Done()
		products, err := c.source.ListVisibleProducts(ctx)
		if err != nil {
			prodErr = errors.NewOperationError(actionLoadProducts, err)
			return
		}
		remote = make([]catalog.Product, 0, len(products))
		for _, p := range products {
			remote = append(remote, p.Normalize())
		}
	}()
	wg.Wait()

	// Both fetches must succeed; a partial catalog is never published.
	if catErr != nil {
		return catalog.Result{}, catErr
	}
	if prodErr != nil {
		return catalog.Result{}, prodErr
	}

	merged := catalog.Merge(remote, c.static)

	log.Debug().
		Int("remote_products", len(remote)).
		Int("local_products", len(c.static)).
		Int("categories", len(categoryNames)).
		Msg("catalog aggregated")

	return catalog.Result{
		Categories: catalog.SynthesizeCategories(categoryNames),
		Products:   merged,
	}, nil
}

// publish installs a freshly aggregated result, unless a newer refresh has
// started since this one.
func (c *client) publish(gen uint64, result catalog.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug().Uint64("generation", gen).
			Msg("stale refresh superseded, result discarded")
		return
	}

	c.result = &result
	c.loading = false
	c.lastError = ""
}

// fail records a refresh failure: the prior result is discarded, not
// retained (choose fresh or nothing).
func (c *client) fail(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Error().Err(err).Uint64("generation", gen).Msg("catalog refresh failed")

	if gen != c.generation {
		return
	}

	c.result = nil
	c.loading = false
	c.lastError = err.Error()
}
