package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/petalworks/shopfront"
	"github.com/petalworks/shopfront/pkg/errors"
	"github.com/petalworks/shopfront/pkg/manage"
	"github.com/petalworks/shopfront/pkg/sources"
)

var productInput struct {
	name        string
	price       float64
	categoryID  int64
	description string
	images      []string
	hidden      bool
	pinned      bool
}

// adminCmd represents the administrative command group
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage products and categories in the remote database",
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List every product, hidden ones included",
	RunE:  runAdminProducts,
}

var adminCreateCategoryCmd = &cobra.Command{
	Use:   "create-category <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCreateCategory,
}

var adminCreateProductCmd = &cobra.Command{
	Use:   "create-product",
	Short: "Create a product",
	RunE:  runAdminCreateProduct,
}

var adminUpdateProductCmd = &cobra.Command{
	Use:   "update-product <product-id>",
	Short: "Update a product's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminUpdateProduct,
}

var adminDeleteProductCmd = &cobra.Command{
	Use:   "delete-product <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteProduct,
}

var adminToggleVisibleCmd = &cobra.Command{
	Use:   "toggle-visible <product-id>",
	Short: "Flip a product's visibility",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminToggleVisible,
}

var adminTogglePinnedCmd = &cobra.Command{
	Use:   "toggle-pinned <product-id>",
	Short: "Flip a product's pinned flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminTogglePinned,
}

func init() {
	for _, c := range []*cobra.Command{adminCreateProductCmd, adminUpdateProductCmd} {
		c.Flags().StringVar(&productInput.name, "name", "", "product name (required)")
		c.Flags().Float64Var(&productInput.price, "price", 0, "price (required)")
		c.Flags().Int64Var(&productInput.categoryID, "category-id", 0, "category id (required)")
		c.Flags().StringVar(&productInput.description, "description", "", "description")
		c.Flags().StringSliceVar(&productInput.images, "image", nil, "image URL (repeatable)")
		c.Flags().BoolVar(&productInput.hidden, "hidden", false, "create hidden from the storefront")
		c.Flags().BoolVar(&productInput.pinned, "pinned", false, "pin to the top of listings")
	}

	adminCmd.AddCommand(adminProductsCmd)
	adminCmd.AddCommand(adminCreateCategoryCmd)
	adminCmd.AddCommand(adminCreateProductCmd)
	adminCmd.AddCommand(adminUpdateProductCmd)
	adminCmd.AddCommand(adminDeleteProductCmd)
	adminCmd.AddCommand(adminToggleVisibleCmd)
	adminCmd.AddCommand(adminTogglePinnedCmd)
	rootCmd.AddCommand(adminCmd)
}

// withManager builds a client and hands its admin manager to fn.
func withManager(fn func(client shopfront.Client, m *manage.Manager) error) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	m := client.Manage()
	if m == nil {
		return errors.NewConfigError("admin", "DATABASE_URL not set", nil)
	}
	return fn(client, m)
}

func collectInput() sources.ProductInput {
	visible := !productInput.hidden
	pinned := productInput.pinned
	return sources.ProductInput{
		Name:        productInput.name,
		Price:       productInput.price,
		CategoryID:  productInput.categoryID,
		Description: productInput.description,
		Images:      productInput.images,
		IsVisible:   &visible,
		IsPinned:    &pinned,
	}
}

func runAdminProducts(cmd *cobra.Command, args []string) error {
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		records, err := m.Products(cmd.Context())
		if err != nil {
			return err
		}
		for _, rec := range records {
			flags := ""
			if !rec.IsVisible {
				flags += " [hidden]"
			}
			if rec.IsPinned {
				flags += " [pinned]"
			}
			printer.Printf("%d  %s — NT$%v  (%s)%s\n",
				rec.ID, rec.Name, rec.Price, rec.CategoryName, flags)
		}
		return nil
	})
}

func runAdminCreateCategory(cmd *cobra.Command, args []string) error {
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		cat, err := m.CreateCategory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created category %d: %s\n", cat.ID, cat.Name)
		return nil
	})
}

func runAdminCreateProduct(cmd *cobra.Command, args []string) error {
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		rec, err := m.CreateProduct(cmd.Context(), collectInput())
		if err != nil {
			return err
		}
		fmt.Printf("Created product %d: %s\n", rec.ID, rec.Name)
		return nil
	})
}

func runAdminUpdateProduct(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		rec, err := m.UpdateProduct(cmd.Context(), id, collectInput())
		if err != nil {
			return err
		}
		fmt.Printf("Updated product %d: %s\n", rec.ID, rec.Name)
		return nil
	})
}

func runAdminDeleteProduct(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		if err := m.DeleteProduct(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted")
		return nil
	})
}

// findRecord locates a product's current admin row so toggles flip from
// its actual state.
func findRecord(cmd *cobra.Command, m *manage.Manager, id int64) (sources.ProductRecord, error) {
	records, err := m.Products(cmd.Context())
	if err != nil {
		return sources.ProductRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return sources.ProductRecord{}, errors.NewNotFoundError("product", strconv.FormatInt(id, 10))
}

func runAdminToggleVisible(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		rec, err := findRecord(cmd, m, id)
		if err != nil {
			return err
		}
		updated, err := m.ToggleVisibility(cmd.Context(), id, rec.IsVisible)
		if err != nil {
			return err
		}
		fmt.Printf("Product %d visible: %v\n", updated.ID, updated.IsVisible)
		return nil
	})
}

func runAdminTogglePinned(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withManager(func(_ shopfront.Client, m *manage.Manager) error {
		rec, err := findRecord(cmd, m, id)
		if err != nil {
			return err
		}
		updated, err := m.TogglePinned(cmd.Context(), id, rec.IsPinned)
		if err != nil {
			return err
		}
		fmt.Printf("Product %d pinned: %v\n", updated.ID, updated.IsPinned)
		return nil
	})
}
