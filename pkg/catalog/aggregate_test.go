package catalog_test

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"

	"github.com/petalworks/shopfront/pkg/catalog"
)

func ts(t time.Time) *utc.Time {
	u := utc.New(t)
	return &u
}

func TestSynthesizeCategories(t *testing.T) {
	t.Run("remote names keep stored order", func(t *testing.T) {
		got := catalog.SynthesizeCategories([]string{"Books", "Toys"})
		assert.Equal(t, []string{"All", "LocalStock", "Books", "Toys"}, got)
	})

	t.Run("empty remote list still yields pseudo-categories", func(t *testing.T) {
		got := catalog.SynthesizeCategories(nil)
		assert.Equal(t, []string{"All", "LocalStock"}, got)
	})
}

func TestMergeOrdersLocalLast(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	remote := []catalog.Product{
		{ID: 1, Name: "older", Category: "Books", UpdatedAt: ts(t1), Images: []string{}},
		{ID: 2, Name: "newer", Category: "Books", UpdatedAt: ts(t2), Images: []string{}},
	}
	local := []catalog.Product{
		catalog.NormalizeLocal(catalog.Product{ID: 9001, Name: "stock"}),
	}

	merged := catalog.Merge(remote, local)

	assert.Len(t, merged, 3)
	assert.Equal(t, int64(2), merged[0].ID, "newest remote first")
	assert.Equal(t, int64(1), merged[1].ID)
	assert.Equal(t, int64(9001), merged[2].ID, "local stock last")
}

func TestMergeLocalLastEvenWithoutRemoteTimestamps(t *testing.T) {
	// A remote product missing its timestamp still sorts ahead of local stock.
	remote := []catalog.Product{
		{ID: 3, Name: "undated", Category: "Toys", Images: []string{}},
	}
	local := []catalog.Product{
		catalog.NormalizeLocal(catalog.Product{ID: 9002, Name: "stock"}),
	}

	merged := catalog.Merge(remote, local)
	assert.Equal(t, int64(3), merged[0].ID)
	assert.Equal(t, int64(9002), merged[1].ID)
}

func TestMergeIsStableWithinEqualKeys(t *testing.T) {
	when := ts(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	remote := []catalog.Product{
		{ID: 10, UpdatedAt: when, Images: []string{}},
		{ID: 11, UpdatedAt: when, Images: []string{}},
	}

	merged := catalog.Merge(remote, nil)
	assert.Equal(t, int64(10), merged[0].ID)
	assert.Equal(t, int64(11), merged[1].ID)
}

func TestNormalize(t *testing.T) {
	t.Run("images never nil", func(t *testing.T) {
		p := catalog.Product{ID: 1, Name: "bare"}.Normalize()
		assert.NotNil(t, p.Images)
		assert.Empty(t, p.Images)
	})

	t.Run("local products are force-tagged", func(t *testing.T) {
		now := utc.Now()
		p := catalog.NormalizeLocal(catalog.Product{
			ID:        5,
			Name:      "stock item",
			Category:  "Books",
			UpdatedAt: &now,
		})
		assert.Equal(t, catalog.CategoryLocalStock, p.Category)
		assert.Nil(t, p.UpdatedAt)
		assert.True(t, p.Local())
	})
}

func TestFirstImage(t *testing.T) {
	withImages := catalog.Product{Images: []string{"a.jpg", "b.jpg"}}
	assert.Equal(t, "a.jpg", withImages.FirstImage())

	bare := catalog.Product{}
	assert.Equal(t, catalog.NoImage, bare.FirstImage())
}

func TestFilterByCategory(t *testing.T) {
	result := catalog.Result{
		Categories: catalog.SynthesizeCategories([]string{"Books"}),
		Products: []catalog.Product{
			{ID: 1, Category: "Books", Images: []string{}},
			{ID: 2, Category: catalog.CategoryLocalStock, Images: []string{}},
		},
	}

	assert.Len(t, result.FilterByCategory(catalog.CategoryAll), 2)
	assert.Len(t, result.FilterByCategory(""), 2)

	books := result.FilterByCategory("Books")
	assert.Len(t, books, 1)
	assert.Equal(t, int64(1), books[0].ID)
}

func TestResultEqual(t *testing.T) {
	when := ts(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	a := catalog.Result{
		Categories: []string{"All", "LocalStock", "Books"},
		Products:   []catalog.Product{{ID: 1, Name: "x", UpdatedAt: when, Images: []string{"i.jpg"}}},
	}
	b := catalog.Result{
		Categories: []string{"All", "LocalStock", "Books"},
		Products:   []catalog.Product{{ID: 1, Name: "x", UpdatedAt: when, Images: []string{"i.jpg"}}},
	}

	assert.True(t, a.Equal(b))

	b.Products[0].Price = 99
	assert.False(t, a.Equal(b))
}
