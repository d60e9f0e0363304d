package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/petalworks/shopfront"
	"github.com/petalworks/shopfront/pkg/errors"
)

var addQuantity int

// cartCmd represents the cart command group
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the persistent shopping cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set a line item's quantity (zero removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartSet,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart and erase its stored record",
	RunE:  runCartClear,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents and totals",
	RunE:  runCartShow,
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "q", 1, "units to add")
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartClearCmd)
	cartCmd.AddCommand(cartShowCmd)
	rootCmd.AddCommand(cartCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("product-id", arg, "must be an integer")
	}
	return id, nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if addQuantity < 1 {
		return errors.NewValidationError("quantity", addQuantity, "must be positive")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	// Resolve the product against the current catalog so the line item
	// captures its name, price, and image.
	if err := client.Refresh(cmd.Context()); err != nil {
		return err
	}
	result, ok := client.Result()
	if !ok {
		return errors.NewSourceError("catalog", errors.ErrSourceUnavailable)
	}

	for _, p := range result.Products {
		if p.ID == id {
			client.Cart().Add(p, addQuantity)
			printer.Printf("Added %d × %s (NT$%v each)\n", addQuantity, p.Name, p.Price)
			return nil
		}
	}
	return errors.NewNotFoundError("product", args[0])
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	client.Cart().Remove(id)
	fmt.Println("Removed")
	return nil
}

func runCartSet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.NewValidationError("quantity", args[1], "must be an integer")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	client.Cart().UpdateQuantity(id, quantity)
	fmt.Println("Updated")
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	client.Cart().Clear()
	fmt.Println("Cart cleared")
	return nil
}

func runCartShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return showCart(client)
}

func showCart(client shopfront.Client) error {
	items := client.Cart().Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}

	for _, item := range items {
		printer.Printf("• %s × %d — NT$%v\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	printer.Printf("\n%d items, total NT$%v\n", client.Cart().Count(), client.Cart().Total())
	return nil
}
