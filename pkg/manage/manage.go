// Package manage implements the administrative side of the storefront:
// creating, updating, and deleting products and categories against the
// remote source.
//
// Every operation validates its required fields before touching the
// backend, wraps backend failures as "<action>失敗: <native message>" so
// callers can show a uniform notice, and maintains shared loading/lastError
// flags that are reset on the way out regardless of outcome.
package manage

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petalworks/shopfront/pkg/errors"
	"github.com/petalworks/shopfront/pkg/logging"
	"github.com/petalworks/shopfront/pkg/sources"
)

// Operator action labels used in failure notices.
const (
	actionLoadCategories   = "載入類別"
	actionLoadProducts     = "載入商品"
	actionCreateCategory   = "新增類別"
	actionCreateProduct    = "新增商品"
	actionUpdateProduct    = "更新商品"
	actionDeleteProduct    = "刪除商品"
	actionToggleVisibility = "切換顯示狀態"
	actionTogglePinned     = "切換置頂狀態"
)

// Manager runs administrative operations against the remote source. One
// instance is shared by every operator-facing consumer.
type Manager struct {
	source sources.Manager
	logger *zerolog.Logger

	mu        sync.Mutex
	loading   bool
	lastError string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger overrides the manager's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// New creates a Manager backed by the given source.
func New(source sources.Manager, opts ...Option) *Manager {
	m := &Manager{
		source: source,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Loading reports whether an operation is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LastError returns the display message of the most recent failure, or ""
// after a success.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// begin marks an operation in flight and clears the previous failure.
func (m *Manager) begin() {
	m.mu.Lock()
	m.loading = true
	m.lastError = ""
	m.mu.Unlock()
}

// finish clears the in-flight flag and records the failure, if any. It runs
// deferred so the flags are consistent on every exit path.
func (m *Manager) finish(err *error) {
	m.mu.Lock()
	m.loading = false
	if *err != nil {
		m.lastError = (*err).Error()
	}
	m.mu.Unlock()

	if *err != nil {
		m.logger.Error().Err(*err).Msg("admin operation failed")
	}
}

// Categories returns every category.
func (m *Manager) Categories(ctx context.Context) (cats []sources.Category, err error) {
	m.begin()
	defer m.finish(&err)

	cats, nativeErr := m.source.ListCategories(ctx)
	if nativeErr != nil {
		err = errors.NewOperationError(actionLoadCategories, nativeErr)
		return nil, err
	}
	return cats, nil
}

// Products returns every product row, hidden ones included.
func (m *Manager) Products(ctx context.Context) (recs []sources.ProductRecord, err error) {
	m.begin()
	defer m.finish(&err)

	recs, nativeErr := m.source.ListProducts(ctx)
	if nativeErr != nil {
		err = errors.NewOperationError(actionLoadProducts, nativeErr)
		return nil, err
	}
	return recs, nil
}

// CreateCategory inserts a category.
func (m *Manager) CreateCategory(ctx context.Context, name string) (cat sources.Category, err error) {
	m.begin()
	defer m.finish(&err)

	if strings.TrimSpace(name) == "" {
		err = errors.NewOperationError(actionCreateCategory,
			errors.NewValidationError("name", name, "cannot be empty"))
		return sources.Category{}, err
	}

	cat, nativeErr := m.source.CreateCategory(ctx, name)
	if nativeErr != nil {
		err = errors.NewOperationError(actionCreateCategory, nativeErr)
		return sources.Category{}, err
	}

	m.logger.Info().Int64("category_id", cat.ID).Str("name", cat.Name).
		Msg("category created")
	return cat, nil
}

// CreateProduct inserts a product.
func (m *Manager) CreateProduct(ctx context.Context, input sources.ProductInput) (rec sources.ProductRecord, err error) {
	m.begin()
	defer m.finish(&err)

	if verr := validateInput(input); verr != nil {
		err = errors.NewOperationError(actionCreateProduct, verr)
		return sources.ProductRecord{}, err
	}

	rec, nativeErr := m.source.CreateProduct(ctx, input)
	if nativeErr != nil {
		err = errors.NewOperationError(actionCreateProduct, nativeErr)
		return sources.ProductRecord{}, err
	}

	m.logger.Info().Int64("product_id", rec.ID).Str("name", rec.Name).
		Msg("product created")
	return rec, nil
}

// UpdateProduct replaces a product's fields.
func (m *Manager) UpdateProduct(ctx context.Context, id int64, input sources.ProductInput) (rec sources.ProductRecord, err error) {
	m.begin()
	defer m.finish(&err)

	if verr := validateInput(input); verr != nil {
		err = errors.NewOperationError(actionUpdateProduct, verr)
		return sources.ProductRecord{}, err
	}

	rec, nativeErr := m.source.UpdateProduct(ctx, id, input)
	if nativeErr != nil {
		err = errors.NewOperationError(actionUpdateProduct, nativeErr)
		return sources.ProductRecord{}, err
	}

	m.logger.Info().Int64("product_id", rec.ID).Msg("product updated")
	return rec, nil
}

// DeleteProduct removes a product.
func (m *Manager) DeleteProduct(ctx context.Context, id int64) (err error) {
	m.begin()
	defer m.finish(&err)

	if nativeErr := m.source.DeleteProduct(ctx, id); nativeErr != nil {
		err = errors.NewOperationError(actionDeleteProduct, nativeErr)
		return err
	}

	m.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// ToggleVisibility flips a product's visibility from its current state.
func (m *Manager) ToggleVisibility(ctx context.Context, id int64, currentlyVisible bool) (rec sources.ProductRecord, err error) {
	m.begin()
	defer m.finish(&err)

	rec, nativeErr := m.source.SetVisibility(ctx, id, !currentlyVisible)
	if nativeErr != nil {
		err = errors.NewOperationError(actionToggleVisibility, nativeErr)
		return sources.ProductRecord{}, err
	}

	m.logger.Info().Int64("product_id", id).Bool("visible", rec.IsVisible).
		Msg("product visibility toggled")
	return rec, nil
}

// TogglePinned flips a product's pinned flag from its current state.
func (m *Manager) TogglePinned(ctx context.Context, id int64, currentlyPinned bool) (rec sources.ProductRecord, err error) {
	m.begin()
	defer m.finish(&err)

	rec, nativeErr := m.source.SetPinned(ctx, id, !currentlyPinned)
	if nativeErr != nil {
		err = errors.NewOperationError(actionTogglePinned, nativeErr)
		return sources.ProductRecord{}, err
	}

	m.logger.Info().Int64("product_id", id).Bool("pinned", rec.IsPinned).
		Msg("product pinned flag toggled")
	return rec, nil
}

// validateInput checks the fields every product write requires.
func validateInput(input sources.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.NewValidationError("name", input.Name, "cannot be empty")
	}
	if input.Price < 0 {
		return errors.NewValidationError("price", input.Price, "must be non-negative")
	}
	if input.CategoryID <= 0 {
		return errors.NewValidationError("category_id", input.CategoryID, "must reference a category")
	}
	return nil
}
