package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/tote/internal/app"
	"github.com/five82/tote/internal/catalog"
	"github.com/five82/tote/internal/logtail"
)

// EventView is one journal entry as reported by the events command.
type EventView struct {
	Session   string    `json:"session" yaml:"session"`
	Type      string    `json:"type" yaml:"type"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Detail    string    `json:"detail" yaml:"detail"`
}

// NewEventsCommand creates the events command.
func NewEventsCommand(opts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent cart activity from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid limit %d", limit))
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			records, err := logtail.Records(cfg.JournalPath(), limit)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to read journal", err)
			}

			// Names are best effort; ids are shown when the catalog is unreachable.
			var name logtail.Namer
			if src, err := app.NewSource(cfg); err == nil {
				if products, err := src.Products(cmd.Context()); err == nil {
					index := catalog.Lookup(products)
					name = func(id int64) string { return index[id].Name }
				} else {
					newLogger(opts, cmd.ErrOrStderr()).Warn("catalog unavailable", "error", err)
				}
			}

			views := make([]EventView, 0, len(records))
			for _, rec := range records {
				views = append(views, EventView{
					Session:   rec.Session,
					Type:      string(rec.Type),
					Timestamp: rec.Timestamp,
					Detail:    logtail.Detail(rec, name),
				})
			}
			return formatter(opts, cmd).Emit(views, func(w io.Writer) error {
				if len(records) == 0 {
					_, err := fmt.Fprintln(w, "No activity yet.")
					return err
				}
				for _, rec := range records {
					if _, err := fmt.Fprintln(w, logtail.Describe(rec, name)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show (0 for all)")
	return cmd
}
