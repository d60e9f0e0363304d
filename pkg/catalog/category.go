package catalog

// Pseudo-categories synthesized into every category list. Neither exists in
// the backend's category table.
const (
	// CategoryAll is the universal pseudo-category matching every product.
	CategoryAll = "All"

	// CategoryLocalStock tags products from the bundled static dataset.
	CategoryLocalStock = "LocalStock"
)

// SynthesizeCategories builds the working category list from the remote
// category names: the universal pseudo-category first, then local stock,
// then the remote names in their stored order.
func SynthesizeCategories(remote []string) []string {
	categories := make([]string, 0, len(remote)+2)
	categories = append(categories, CategoryAll, CategoryLocalStock)
	categories = append(categories, remote...)
	return categories
}
