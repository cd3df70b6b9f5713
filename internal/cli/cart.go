package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/tote/internal/app"
	"github.com/five82/tote/internal/catalog"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the cart",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(sess *app.Session) error {
				return emitCart(opts, cmd, sess)
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if qty < 1 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid quantity %d: must be at least 1", qty))
			}
			return withSession(opts, cmd, func(sess *app.Session) error {
				products := productIndex(cmd.Context(), sess)
				if len(products) > 0 {
					if _, ok := products[id]; !ok {
						return NewExitError(ExitFailure, fmt.Sprintf("unknown product %d", id))
					}
				}
				sess.Provider.Cart().AddItem(id, qty)
				return emitCartWith(opts, cmd, sess, products)
			})
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "n", 1, "quantity to add")
	return cmd
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a product from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, cmd, func(sess *app.Session) error {
				c := sess.Provider.Cart()
				if !c.HasItem(id) {
					return NewExitError(ExitFailure, fmt.Sprintf("product %d is not in the cart", id))
				}
				c.RemoveItem(id)
				return emitCart(opts, cmd, sess)
			})
		},
	}
}

// NewSetCommand creates the set command.
func NewSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set ID QTY",
		Short: "Set the quantity of a cart line (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			return withSession(opts, cmd, func(sess *app.Session) error {
				c := sess.Provider.Cart()
				if !c.HasItem(id) {
					return NewExitError(ExitFailure, fmt.Sprintf("product %d is not in the cart", id))
				}
				c.UpdateQuantity(id, qty)
				return emitCart(opts, cmd, sess)
			})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(sess *app.Session) error {
				sess.Provider.Cart().ClearCart()
				return emitCart(opts, cmd, sess)
			})
		},
	}
}

// CheckoutResult reports a completed checkout.
type CheckoutResult struct {
	Items      int    `json:"items" yaml:"items"`
	TotalCents int64  `json:"total_cents" yaml:"total_cents"`
	Total      string `json:"total" yaml:"total"`
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Check out: empty the cart and forget the saved copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(sess *app.Session) error {
				view := newCartView(sess.Store.GetState(), productIndex(cmd.Context(), sess))
				if view.ItemCount == 0 {
					return NewExitError(ExitFailure, "cart is empty")
				}
				n := sess.Checkout()
				result := CheckoutResult{Items: n, TotalCents: view.TotalCents, Total: view.Total}
				return formatter(opts, cmd).Emit(result, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Checked out %d %s for %s.\n", n, plural(n, "item", "items"), view.Total)
					return err
				})
			})
		},
	}
}

func emitCart(opts *RootOptions, cmd *cobra.Command, sess *app.Session) error {
	return emitCartWith(opts, cmd, sess, productIndex(cmd.Context(), sess))
}

func emitCartWith(opts *RootOptions, cmd *cobra.Command, sess *app.Session, products map[int64]catalog.Product) error {
	view := newCartView(sess.Store.GetState(), products)
	return formatter(opts, cmd).Emit(view, func(w io.Writer) error {
		return renderCart(w, view)
	})
}
