package catalog

import (
	"sort"
)

// Result is the displayable artifact of a catalog refresh: the synthesized
// category list and the merged, ordered products. A Result is immutable once
// produced; each refresh replaces it wholesale so consumers never observe a
// partially updated catalog.
type Result struct {
	Categories []string
	Products   []Product
}

// Merge combines remote and local products into one ordered sequence.
// Local stock always sorts after every remote product regardless of
// timestamps; within each provenance group products sort by update time
// descending, with missing timestamps treated as the epoch. The sort is
// stable, so equal keys keep their source order.
func Merge(remote, local []Product) []Product {
	merged := make([]Product, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	merged = append(merged, local...)

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Local() != b.Local() {
			return !a.Local() // remote before local, always
		}
		return updatedAtUnix(a) > updatedAtUnix(b)
	})

	return merged
}

// FilterByCategory returns the products visible under the given category.
// The universal pseudo-category matches everything.
func (r Result) FilterByCategory(category string) []Product {
	if category == "" || category == CategoryAll {
		out := make([]Product, len(r.Products))
		copy(out, r.Products)
		return out
	}

	out := make([]Product, 0)
	for _, p := range r.Products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Equal reports whether two results are element-wise equal. Used to verify
// refresh idempotence against an unchanged backend.
func (r Result) Equal(other Result) bool {
	if len(r.Categories) != len(other.Categories) || len(r.Products) != len(other.Products) {
		return false
	}
	for i, c := range r.Categories {
		if other.Categories[i] != c {
			return false
		}
	}
	for i, p := range r.Products {
		if !productsEqual(p, other.Products[i]) {
			return false
		}
	}
	return true
}

func productsEqual(a, b Product) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Price != b.Price ||
		a.Category != b.Category || a.Description != b.Description ||
		len(a.Images) != len(b.Images) {
		return false
	}
	for i, img := range a.Images {
		if b.Images[i] != img {
			return false
		}
	}
	return updatedAtUnix(a) == updatedAtUnix(b)
}
