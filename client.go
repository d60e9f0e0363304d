package shopfront

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petalworks/shopfront/internal/embedded"
	sourcespg "github.com/petalworks/shopfront/internal/sources/postgres"
	"github.com/petalworks/shopfront/pkg/cart"
	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/errors"
	"github.com/petalworks/shopfront/pkg/logging"
	"github.com/petalworks/shopfront/pkg/manage"
	"github.com/petalworks/shopfront/pkg/sources"
	"github.com/petalworks/shopfront/pkg/storage"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	logger  *zerolog.Logger

	source  sources.Source
	static  []catalog.Product
	cart    *cart.Store
	manager *manage.Manager

	// store is the cart's durable storage; ownsStore records whether the
	// client opened it (and must close it) or had it injected.
	store     storage.Store
	ownsStore bool

	// aggregation state, shared by every consumer
	mu         sync.RWMutex
	result     *catalog.Result
	loading    bool
	lastError  string
	generation uint64 // most recently started refresh
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o := defaultOptions()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Default()
	}

	c := &client{
		options: o,
		logger:  logger,
		source:  o.source,
	}

	// Static dataset: bundled unless the caller supplied one.
	if o.staticSet {
		c.static = normalizeStatic(o.static)
	} else {
		static, err := embedded.Products()
		if err != nil {
			return nil, err
		}
		c.static = static
	}

	// Remote source from connection string, unless injected.
	if c.source == nil && o.databaseURL != "" {
		source, err := sourcespg.New(context.Background(), o.databaseURL)
		if err != nil {
			return nil, err
		}
		c.source = source
	}

	// Cart storage: injected, opened from path, or memory-only.
	switch {
	case o.store != nil:
		c.store = o.store
	case o.storePath != "":
		store, err := storage.OpenBolt(o.storePath)
		if err != nil {
			return nil, err
		}
		c.store = store
		c.ownsStore = true
	default:
		c.store = storage.NewMemory()
	}

	c.cart = cart.New(c.store, cart.WithLogger(logger))

	if c.source != nil {
		c.manager = manage.New(c.source, manage.WithLogger(logger))
	}

	return c, nil
}

// Cart returns the process-wide cart store.
func (c *client) Cart() *cart.Store {
	return c.cart
}

// Manage returns the admin manager, or nil when no remote source is
// configured.
func (c *client) Manage() *manage.Manager {
	return c.manager
}

// Result returns the last published catalog and whether one exists.
func (c *client) Result() (catalog.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return catalog.Result{}, false
	}
	return *c.result, true
}

// Loading reports whether a refresh is in flight.
func (c *client) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the most recent refresh failure message, or "".
func (c *client) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Close flushes the cart and releases owned resources.
func (c *client) Close() error {
	c.cart.Close()

	if c.source != nil {
		c.source.Close()
	}

	if c.ownsStore {
		if err := c.store.Close(); err != nil {
			return err
		}
	}
	return nil
}

// normalizeStatic forces caller-supplied static products into local
// provenance, the same shape the bundled dataset gets.
func normalizeStatic(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		out = append(out, catalog.NormalizeLocal(p))
	}
	return out
}

// errNoSource is returned by Refresh when the client has no remote source.
func errNoSource() error {
	return errors.NewConfigError("shopfront", "no remote source configured", nil)
}
