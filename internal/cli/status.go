package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/five82/tote/internal/app"
	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/catalog"
	"github.com/five82/tote/internal/events"
	"github.com/five82/tote/internal/logtail"
)

// StatusView describes where the cart lives and what it has been doing.
type StatusView struct {
	Storage    string         `json:"storage" yaml:"storage"`
	DataDir    string         `json:"data_dir" yaml:"data_dir"`
	Restored   string         `json:"restored" yaml:"restored"`
	Catalog    string         `json:"catalog" yaml:"catalog"`
	Journal    string         `json:"journal" yaml:"journal"`
	ItemCount  int            `json:"item_count" yaml:"item_count"`
	Unique     int            `json:"unique_items" yaml:"unique_items"`
	Total      string         `json:"total" yaml:"total"`
	EventCount map[string]int `json:"events" yaml:"events"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show storage, cart and journal summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(sess *app.Session) error {
				records, err := logtail.Records(sess.Config.JournalPath(), 0)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to read journal", err)
				}
				view := buildStatus(sess, productIndex(cmd.Context(), sess), records)
				return formatter(opts, cmd).Emit(view, func(w io.Writer) error {
					return renderStatus(w, view)
				})
			})
		},
	}
}

func buildStatus(sess *app.Session, products map[int64]catalog.Product, records []events.Record) StatusView {
	s := sess.Store.GetState()
	source := "builtin"
	if sess.Config.CatalogAPI != "" {
		source = sess.Config.CatalogAPI
	}
	counts := map[string]int{}
	for _, rec := range records {
		counts[string(rec.Type)]++
	}
	return StatusView{
		Storage:    sess.Config.Storage,
		DataDir:    sess.Config.DataDir,
		Restored:   string(sess.Restored),
		Catalog:    source,
		Journal:    sess.Config.JournalPath(),
		ItemCount:  cart.ItemCount(s),
		Unique:     cart.UniqueItemCount(s),
		Total:      newCartView(s, products).Total,
		EventCount: counts,
	}
}

func renderStatus(w io.Writer, v StatusView) error {
	lines := []string{
		fmt.Sprintf("storage   %s (%s)", v.Storage, v.DataDir),
		fmt.Sprintf("restored  %s", v.Restored),
		fmt.Sprintf("catalog   %s", v.Catalog),
		fmt.Sprintf("cart      %d %s in %d %s, %s", v.ItemCount, plural(v.ItemCount, "item", "items"),
			v.Unique, plural(v.Unique, "line", "lines"), v.Total),
		fmt.Sprintf("journal   %s", v.Journal),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(v.EventCount)) {
		if _, err := fmt.Fprintf(w, "  %-16s %d\n", name, v.EventCount[name]); err != nil {
			return err
		}
	}
	return nil
}
