// Package embedded carries the bundled local-stock dataset compiled into the
// binary. These products have no backing database row and no update
// timestamp; the aggregation pipeline tags them with the local stock
// pseudo-category and sorts them after every remote product.
package embedded

import (
	"embed"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/errors"
)

// FS embeds the static local-stock data files at build time.
//
//go:embed stock/*
var FS embed.FS

// stockFile is the bundled dataset path inside FS.
const stockFile = "stock/products.yaml"

// stockDocument is the on-disk shape of the bundled dataset.
type stockDocument struct {
	Products []stockProduct `yaml:"products"`
}

type stockProduct struct {
	ID          int64    `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       float64  `yaml:"price"`
	Description string   `yaml:"description"`
	Images      []string `yaml:"images"`
}

var (
	loadOnce sync.Once
	loaded   []catalog.Product
	loadErr  error
)

// Products returns the bundled local-stock products, normalized into the
// common catalog shape. The dataset is decoded once per process.
func Products() ([]catalog.Product, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load()
	})
	if loadErr != nil {
		return nil, loadErr
	}

	out := make([]catalog.Product, len(loaded))
	copy(out, loaded)
	return out, nil
}

func load() ([]catalog.Product, error) {
	data, err := FS.ReadFile(stockFile)
	if err != nil {
		return nil, errors.NewParseError("yaml", stockFile, "reading embedded dataset", err)
	}

	var doc stockDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParseError("yaml", stockFile, "decoding embedded dataset", err)
	}

	products := make([]catalog.Product, 0, len(doc.Products))
	for _, sp := range doc.Products {
		products = append(products, catalog.NormalizeLocal(catalog.Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Price:       sp.Price,
			Description: sp.Description,
			Images:      sp.Images,
		}))
	}
	return products, nil
}
