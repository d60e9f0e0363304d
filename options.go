package shopfront

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/sources"
	"github.com/petalworks/shopfront/pkg/storage"
)

// DefaultFetchTimeout bounds one catalog refresh cycle.
const DefaultFetchTimeout = 30 * time.Second

// Option is a function that configures a Client.
type Option func(*options) error

// options are the configured options for the client.
type options struct {
	databaseURL  string
	source       sources.Source
	storePath    string
	store        storage.Store
	static       []catalog.Product
	staticSet    bool
	fetchTimeout time.Duration
	logger       *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		fetchTimeout: DefaultFetchTimeout,
	}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithDatabaseURL configures the remote product database connection string.
// The client owns the resulting connection and closes it on Close.
func WithDatabaseURL(url string) Option {
	return func(o *options) error {
		o.databaseURL = url
		return nil
	}
}

// WithSource injects a remote source directly, bypassing WithDatabaseURL.
// The client takes ownership and closes it on Close.
func WithSource(source sources.Source) Option {
	return func(o *options) error {
		o.source = source
		return nil
	}
}

// WithStorePath configures the durable cart storage file. The client owns
// the resulting store and closes it on Close. Without this option (or
// WithStorage) the cart lives in memory only.
func WithStorePath(path string) Option {
	return func(o *options) error {
		o.storePath = path
		return nil
	}
}

// WithStorage injects durable cart storage directly. The caller keeps
// ownership; Close will not close it.
func WithStorage(store storage.Store) Option {
	return func(o *options) error {
		o.store = store
		return nil
	}
}

// WithStaticProducts overrides the bundled local-stock dataset.
func WithStaticProducts(products []catalog.Product) Option {
	return func(o *options) error {
		o.static = products
		o.staticSet = true
		return nil
	}
}

// WithFetchTimeout bounds each refresh cycle. Zero restores the default.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		o.fetchTimeout = timeout
		return nil
	}
}

// WithLogger overrides the client's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
