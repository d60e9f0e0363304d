package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/petalworks/shopfront/pkg/catalog"
)

// printer formats prices with digit grouping for display.
var printer = message.NewPrinter(language.TraditionalChinese)

var categoryFilter string

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the aggregated product catalog",
}

// productsCmd lists the merged, ordered products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products, newest remote updates first and local stock last",
	RunE:  runProducts,
}

// categoriesCmd lists the synthesized category sequence
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the synthesized category sequence",
	RunE:  runCategories,
}

func init() {
	productsCmd.Flags().StringVarP(&categoryFilter, "category", "c", "", "only show products in this category")
	catalogCmd.AddCommand(productsCmd)
	catalogCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Refresh(cmd.Context()); err != nil {
		return err
	}

	result, ok := client.Result()
	if !ok {
		fmt.Println("No catalog available")
		return nil
	}

	products := result.FilterByCategory(categoryFilter)
	if len(products) == 0 {
		fmt.Println("No products found")
		return nil
	}

	for _, p := range products {
		printProduct(p)
	}
	return nil
}

func printProduct(p catalog.Product) {
	printer.Printf("• %s — NT$%v  [%s]\n", p.Name, p.Price, p.Category)
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}
	if p.UpdatedAt != nil {
		fmt.Printf("  updated %s\n", p.UpdatedAt.Time.Format("2006-01-02"))
	}
}

func runCategories(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Refresh(cmd.Context()); err != nil {
		return err
	}

	result, ok := client.Result()
	if !ok {
		fmt.Println("No catalog available")
		return nil
	}

	for _, c := range result.Categories {
		fmt.Println(c)
	}
	return nil
}
