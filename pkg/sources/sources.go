// Package sources defines the contracts for the remote product database.
// The read side feeds catalog aggregation; the write side backs the
// administrative product manager. Implementations live under
// internal/sources.
package sources

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/petalworks/shopfront/pkg/catalog"
)

// Category is a remote category row.
type Category struct {
	ID   int64
	Name string
}

// Reader is the read-only view of the remote source consumed by catalog
// aggregation. Both operations may fail with a transport or query error.
type Reader interface {
	// ListCategories returns every category in stored order.
	ListCategories(ctx context.Context) ([]Category, error)

	// ListVisibleProducts returns the products flagged visible, each
	// joined with its category name, in stored order.
	ListVisibleProducts(ctx context.Context) ([]catalog.Product, error)
}

// ProductInput carries the fields for creating or updating a product.
type ProductInput struct {
	Name        string
	Price       float64
	CategoryID  int64
	Description string
	Images      []string
	IsVisible   *bool // nil means default (visible on create)
	IsPinned    *bool // nil means default (not pinned on create)
}

// ProductRecord is the administrative view of a product row, including
// fields the display catalog never sees.
type ProductRecord struct {
	ID           int64
	Name         string
	Price        float64
	CategoryID   int64
	CategoryName string
	Description  string
	Images       []string
	IsVisible    bool
	IsPinned     bool
	CreatedAt    utc.Time
	UpdatedAt    *utc.Time
}

// Manager is the write-capable view of the remote source backing the
// administrative operations. Every mutation surfaces the backend's native
// error; display wrapping is the manage layer's job.
type Manager interface {
	Reader

	// ListProducts returns every product row, hidden ones included.
	ListProducts(ctx context.Context) ([]ProductRecord, error)

	// CreateCategory inserts a category and returns the stored row.
	CreateCategory(ctx context.Context, name string) (Category, error)

	// CreateProduct inserts a product and returns the stored row.
	CreateProduct(ctx context.Context, input ProductInput) (ProductRecord, error)

	// UpdateProduct replaces a product's fields and stamps its update time.
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (ProductRecord, error)

	// DeleteProduct removes a product row.
	DeleteProduct(ctx context.Context, id int64) error

	// SetVisibility flips a product's visibility flag.
	SetVisibility(ctx context.Context, id int64, visible bool) (ProductRecord, error)

	// SetPinned flips a product's pinned flag.
	SetPinned(ctx context.Context, id int64, pinned bool) (ProductRecord, error)
}

// Source combines both views with resource cleanup.
type Source interface {
	Manager

	// Close releases the underlying connections.
	Close()
}
