package cart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/shopfront/pkg/cart"
	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/logging"
	"github.com/petalworks/shopfront/pkg/storage"
)

func product(id int64, name string, price float64, images ...string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: price, Images: images}
}

func TestAddMergesByProductID(t *testing.T) {
	store := storage.NewMemory()
	c := cart.New(store)
	defer c.Close()

	p := product(1, "mug", 120, "mug.jpg")
	c.Add(p, 2)
	c.Add(p, 3)

	items := c.Items()
	require.Len(t, items, 1, "same product twice must stay one line item")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "mug", items[0].Name)
	assert.Equal(t, "mug.jpg", items[0].Image)
	assert.Equal(t, 120.0, items[0].Price)
}

func TestAddWithoutImagesUsesPlaceholder(t *testing.T) {
	c := cart.New(storage.NewMemory())
	defer c.Close()

	c.Add(product(2, "bare", 10), 1)
	assert.Equal(t, catalog.NoImage, c.Items()[0].Image)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := cart.New(storage.NewMemory())
	defer c.Close()

	c.Add(product(1, "first", 1), 1)
	c.Add(product(2, "second", 2), 1)
	c.Add(product(1, "first", 1), 1) // increment, not reorder

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets the quantity exactly", func(t *testing.T) {
		c := cart.New(storage.NewMemory())
		defer c.Close()

		c.Add(product(1, "mug", 120), 2)
		c.UpdateQuantity(1, 7)
		assert.Equal(t, 7, c.Items()[0].Quantity)
	})

	t.Run("zero removes the item", func(t *testing.T) {
		c := cart.New(storage.NewMemory())
		defer c.Close()

		c.Add(product(1, "mug", 120), 2)
		c.Add(product(2, "pen", 30), 1)
		c.UpdateQuantity(1, 0)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID)
		assert.Equal(t, 1, c.Count(), "count must exclude the removed item")
	})

	t.Run("negative removes the item", func(t *testing.T) {
		c := cart.New(storage.NewMemory())
		defer c.Close()

		c.Add(product(1, "mug", 120), 2)
		c.UpdateQuantity(1, -3)
		assert.Empty(t, c.Items())
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		c := cart.New(storage.NewMemory())
		defer c.Close()

		c.Add(product(1, "mug", 120), 2)
		c.UpdateQuantity(99, 5)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})
}

func TestRemoveAbsentIDLeavesCartUnchanged(t *testing.T) {
	c := cart.New(storage.NewMemory())
	defer c.Close()

	c.Add(product(1, "mug", 120), 1)
	c.Add(product(2, "pen", 30), 1)

	before := c.Items()
	c.Remove(42)
	after := c.Items()

	assert.Equal(t, before, after)
}

func TestDerivedAggregates(t *testing.T) {
	c := cart.New(storage.NewMemory())
	defer c.Close()

	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 0.0, c.Total())

	c.Add(product(1, "mug", 120), 2)
	c.Add(product(2, "pen", 30.5), 3)

	assert.Equal(t, 5, c.Count())
	assert.InDelta(t, 120*2+30.5*3, c.Total(), 1e-9)
}

func TestClearErasesDurableRecord(t *testing.T) {
	store := storage.NewMemory()

	c := cart.New(store)
	c.Add(product(1, "mug", 120), 2)
	c.Clear()
	c.Close() // flush pending writes

	_, ok, err := store.Read(cart.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "clear must erase the record, not write an empty list")
}

func TestRemovalToEmptyAlsoErasesRecord(t *testing.T) {
	// One consistent policy: an empty cart never leaves a record behind,
	// whether it was cleared or drained item by item.
	store := storage.NewMemory()

	c := cart.New(store)
	c.Add(product(1, "mug", 120), 2)
	c.Remove(1)
	c.Close()

	_, ok, err := store.Read(cart.DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemory()

	c := cart.New(store)
	c.Add(product(1, "mug", 120, "mug.jpg"), 2)
	c.Add(product(2, "pen", 30), 1)
	c.UpdateQuantity(2, 4)
	c.Close()

	rehydrated := cart.New(store)
	defer rehydrated.Close()

	items := rehydrated.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 4, items[1].Quantity)
	assert.Equal(t, 6, rehydrated.Count())
}

// failingStore fails every operation, standing in for a broken medium.
type failingStore struct{}

func (failingStore) Read(string) ([]byte, bool, error) {
	return nil, false, errors.New("medium unavailable")
}
func (failingStore) Write(string, []byte) error { return errors.New("medium unavailable") }
func (failingStore) Erase(string) error         { return errors.New("medium unavailable") }
func (failingStore) Close() error               { return nil }

func TestStorageFailuresNeverPropagate(t *testing.T) {
	tl := logging.NewTestLogger(t)

	c := cart.New(failingStore{}, cart.WithLogger(tl.Logger))
	c.Add(product(1, "mug", 120), 2)
	c.UpdateQuantity(1, 5)
	c.Clear()
	c.Add(product(2, "pen", 30), 1)
	c.Close()

	// Mutations kept working in memory the whole time.
	assert.True(t, tl.Contains("cart hydration failed"))
	assert.True(t, tl.Contains("continuing in memory"))
}

func TestCorruptRecordStartsEmpty(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Write(cart.DefaultKey, []byte("not json")))

	tl := logging.NewTestLogger(t)
	c := cart.New(store, cart.WithLogger(tl.Logger))
	defer c.Close()

	assert.Empty(t, c.Items())
	assert.True(t, tl.Contains("cart record corrupt"))
}

func TestAddNonPositiveQuantityIsIgnored(t *testing.T) {
	c := cart.New(storage.NewMemory())
	defer c.Close()

	c.Add(product(1, "mug", 120), 0)
	c.Add(product(1, "mug", 120), -1)
	assert.Empty(t, c.Items())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := cart.New(storage.NewMemory())
	c.Close()
	c.Close()
}
