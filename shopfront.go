// Package shopfront provides the client feature set for the storefront:
// a persistent shopping cart and an aggregated product catalog that merges
// the remote product database with the bundled local-stock dataset into one
// sorted, displayable collection.
//
// The package wires three cooperating pieces behind a single Client:
//   - catalog aggregation with a choose-fresh-or-nothing refresh cycle
//   - a cart with write-behind durable persistence and derived totals
//   - administrative product management against the remote source
//
// Example usage:
//
//	sf, err := shopfront.New(
//	    shopfront.WithDatabaseURL(os.Getenv("DATABASE_URL")),
//	    shopfront.WithStorePath("~/.shopfront/shopfront.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sf.Close()
//
//	if err := sf.Refresh(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, _ := sf.Result()
//	for _, p := range result.Products {
//	    fmt.Printf("%s  NT$%.0f\n", p.Name, p.Price)
//	    sf.Cart().Add(p, 1)
//	}
package shopfront

import (
	"context"

	"github.com/petalworks/shopfront/pkg/cart"
	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/manage"
)

// Aggregator provides the catalog aggregation cycle and its observable
// state. All state is shared process-wide: a single in-flight fetch model,
// not per-caller.
type Aggregator interface {
	// Refresh fetches, merges, and publishes a new catalog Result.
	// Overlapping calls are re-entrant safe; the most recently started
	// call wins.
	Refresh(ctx context.Context) error

	// Result returns the last published catalog and whether one exists.
	Result() (catalog.Result, bool)

	// Loading reports whether a refresh is in flight.
	Loading() bool

	// LastError returns the display message of the most recent refresh
	// failure, or "" after a success.
	LastError() string
}

// Carter provides access to the shared cart.
type Carter interface {
	// Cart returns the process-wide cart store.
	Cart() *cart.Store
}

// Administrator provides access to the administrative product manager.
type Administrator interface {
	// Manage returns the admin manager, or nil when the client has no
	// write-capable remote source configured.
	Manage() *manage.Manager
}

// Client is the complete storefront client interface.
type Client interface {
	Aggregator
	Carter
	Administrator

	// Close flushes the cart and releases every owned resource.
	Close() error
}
