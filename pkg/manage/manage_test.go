package manage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/shopfront/pkg/catalog"
	pkgerrors "github.com/petalworks/shopfront/pkg/errors"
	"github.com/petalworks/shopfront/pkg/manage"
	"github.com/petalworks/shopfront/pkg/sources"
)

// fakeSource is a scriptable sources.Manager.
type fakeSource struct {
	categories []sources.Category
	records    []sources.ProductRecord
	err        error

	createdCategory string
	lastVisible     *bool
	lastPinned      *bool
	deletedID       int64
}

func (f *fakeSource) ListCategories(context.Context) ([]sources.Category, error) {
	return f.categories, f.err
}

func (f *fakeSource) ListVisibleProducts(context.Context) ([]catalog.Product, error) {
	return nil, f.err
}

func (f *fakeSource) ListProducts(context.Context) ([]sources.ProductRecord, error) {
	return f.records, f.err
}

func (f *fakeSource) CreateCategory(_ context.Context, name string) (sources.Category, error) {
	if f.err != nil {
		return sources.Category{}, f.err
	}
	f.createdCategory = name
	return sources.Category{ID: 1, Name: name}, nil
}

func (f *fakeSource) CreateProduct(_ context.Context, input sources.ProductInput) (sources.ProductRecord, error) {
	if f.err != nil {
		return sources.ProductRecord{}, f.err
	}
	return sources.ProductRecord{ID: 10, Name: input.Name, Price: input.Price, CategoryID: input.CategoryID}, nil
}

func (f *fakeSource) UpdateProduct(_ context.Context, id int64, input sources.ProductInput) (sources.ProductRecord, error) {
	if f.err != nil {
		return sources.ProductRecord{}, f.err
	}
	return sources.ProductRecord{ID: id, Name: input.Name}, nil
}

func (f *fakeSource) DeleteProduct(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = id
	return nil
}

func (f *fakeSource) SetVisibility(_ context.Context, id int64, visible bool) (sources.ProductRecord, error) {
	if f.err != nil {
		return sources.ProductRecord{}, f.err
	}
	f.lastVisible = &visible
	return sources.ProductRecord{ID: id, IsVisible: visible}, nil
}

func (f *fakeSource) SetPinned(_ context.Context, id int64, pinned bool) (sources.ProductRecord, error) {
	if f.err != nil {
		return sources.ProductRecord{}, f.err
	}
	f.lastPinned = &pinned
	return sources.ProductRecord{ID: id, IsPinned: pinned}, nil
}

func validInput() sources.ProductInput {
	return sources.ProductInput{Name: "mug", Price: 120, CategoryID: 3}
}

func TestCreateProduct(t *testing.T) {
	t.Run("success clears flags", func(t *testing.T) {
		m := manage.New(&fakeSource{})

		rec, err := m.CreateProduct(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, "mug", rec.Name)
		assert.False(t, m.Loading())
		assert.Empty(t, m.LastError())
	})

	t.Run("backend failure wraps action label", func(t *testing.T) {
		m := manage.New(&fakeSource{err: pkgerrors.New("insert blocked by row policy")})

		_, err := m.CreateProduct(context.Background(), validInput())
		require.Error(t, err)
		assert.Equal(t, "新增商品失敗: insert blocked by row policy", err.Error())
		assert.Equal(t, err.Error(), m.LastError())
		assert.False(t, m.Loading(), "loading must clear on failure too")
	})

	t.Run("validation failures never reach the backend", func(t *testing.T) {
		tests := []struct {
			name  string
			input sources.ProductInput
		}{
			{"empty name", sources.ProductInput{Price: 1, CategoryID: 1}},
			{"blank name", sources.ProductInput{Name: "   ", Price: 1, CategoryID: 1}},
			{"negative price", sources.ProductInput{Name: "x", Price: -1, CategoryID: 1}},
			{"missing category", sources.ProductInput{Name: "x", Price: 1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				src := &fakeSource{}
				m := manage.New(src)

				_, err := m.CreateProduct(context.Background(), tt.input)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "新增商品失敗")
				assert.True(t, pkgerrors.IsValidationError(err))
			})
		}
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		m := manage.New(&fakeSource{})
		_, err := m.CreateCategory(context.Background(), "  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "新增類別失敗")
	})

	t.Run("passes name through", func(t *testing.T) {
		src := &fakeSource{}
		m := manage.New(src)

		cat, err := m.CreateCategory(context.Background(), "Books")
		require.NoError(t, err)
		assert.Equal(t, "Books", cat.Name)
		assert.Equal(t, "Books", src.createdCategory)
	})
}

func TestToggleFlipsCurrentState(t *testing.T) {
	src := &fakeSource{}
	m := manage.New(src)

	_, err := m.ToggleVisibility(context.Background(), 5, true)
	require.NoError(t, err)
	require.NotNil(t, src.lastVisible)
	assert.False(t, *src.lastVisible)

	_, err = m.TogglePinned(context.Background(), 5, false)
	require.NoError(t, err)
	require.NotNil(t, src.lastPinned)
	assert.True(t, *src.lastPinned)
}

func TestDeleteProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		src := &fakeSource{}
		m := manage.New(src)

		require.NoError(t, m.DeleteProduct(context.Background(), 7))
		assert.Equal(t, int64(7), src.deletedID)
		assert.Empty(t, m.LastError())
	})

	t.Run("failure", func(t *testing.T) {
		m := manage.New(&fakeSource{err: pkgerrors.New("row locked")})

		err := m.DeleteProduct(context.Background(), 7)
		require.Error(t, err)
		assert.Equal(t, "刪除商品失敗: row locked", err.Error())
	})
}

func TestSuccessAfterFailureClearsLastError(t *testing.T) {
	src := &fakeSource{err: pkgerrors.New("boom")}
	m := manage.New(src)

	_, err := m.Categories(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, m.LastError())

	src.err = nil
	_, err = m.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m.LastError())
}
