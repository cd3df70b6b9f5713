package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/tote/internal/catalog"
	"github.com/five82/tote/internal/ui"
)

// Run boots the storefront TUI until the shopper quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	sess, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cache := catalog.NewCache(nil)
	// Populate the cache before the UI starts so the first frame has products.
	if err := refresh(ctx, cache, sess.Catalog); err != nil {
		sess.Logger.Warn("initial catalog fetch failed", "error", err)
	}
	if _, static := sess.Catalog.(*catalog.Static); !static {
		StartPoller(ctx, cache, sess.Catalog, defaultPollInterval, sess.Logger.With("component", "poller"))
	}

	if err := ui.Run(ctx, ui.Options{
		Context:     ctx,
		Provider:    sess.Provider,
		Catalog:     cache,
		JournalPath: sess.Config.JournalPath(),
		ThemeName:   sess.Config.Theme,
	}); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
