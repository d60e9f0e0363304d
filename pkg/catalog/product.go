// Package catalog provides the core product catalog types for the shopfront
// system and the aggregation pipeline that merges remote and locally bundled
// products into a single display-ready collection.
//
// Products come from two disjoint provenances: "remote" records fetched from
// the live backend (which carry a real update timestamp) and "local" records
// from the bundled static dataset (which never do). The aggregation pipeline
// normalizes both shapes, synthesizes the category list, and orders the
// merged products so the freshest remote updates lead and local stock trails.
package catalog

import (
	"github.com/agentstation/utc"
)

// Product is a single displayable catalog entry, normalized from either
// provenance into one shape.
type Product struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Price       float64   `json:"price" yaml:"price"` // non-negative
	Category    string    `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Images      []string  `json:"images" yaml:"images"` // never nil
	UpdatedAt   *utc.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Local reports whether the product came from the bundled static dataset.
// Local products are force-tagged with the local stock pseudo-category and
// never carry an update timestamp.
func (p Product) Local() bool {
	return p.Category == CategoryLocalStock
}

// FirstImage returns the product's first image URL, or the placeholder when
// the product has none.
func (p Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return NoImage
}

// NoImage is the placeholder recorded when a product carries no images.
const NoImage = "no-image"

// Normalize fills the defaults every consumer may rely on: a non-nil Images
// slice and an empty (rather than absent) description.
func (p Product) Normalize() Product {
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

// NormalizeLocal normalizes a bundled static record into the common Product
// shape: local stock category, no update timestamp.
func NormalizeLocal(p Product) Product {
	p = p.Normalize()
	p.Category = CategoryLocalStock
	p.UpdatedAt = nil
	return p
}

// updatedAtUnix returns the sort key for a product's update timestamp.
// Products without one sort as the epoch, i.e. oldest.
func updatedAtUnix(p Product) int64 {
	if p.UpdatedAt == nil || p.UpdatedAt.IsZero() {
		return 0
	}
	return p.UpdatedAt.Time.UnixNano()
}
