package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/tote/internal/app"
	"github.com/five82/tote/internal/catalog"
	"github.com/five82/tote/internal/config"
)

// newLogger returns a stderr logger: debug when verbose, warnings otherwise.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}
	return cfg, nil
}

// withSession opens the cart, runs fn and closes the cart again, flushing
// any change fn made.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(*app.Session) error) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	sess, err := app.Open(app.Options{
		Config: &cfg,
		Logger: newLogger(opts, cmd.ErrOrStderr()),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open cart", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = WrapExitError(ExitCommandError, "failed to close cart", cerr)
		}
	}()
	return fn(sess)
}

func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

// productIndex fetches the catalog for display. A failure is logged and an
// empty index returned, so commands still work with ids alone.
func productIndex(ctx context.Context, sess *app.Session) map[int64]catalog.Product {
	products, err := sess.Catalog.Products(ctx)
	if err != nil {
		sess.Logger.Warn("catalog unavailable", "error", err)
		return map[int64]catalog.Product{}
	}
	return catalog.Lookup(products)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid product id %q", arg))
	}
	return id, nil
}

func parseQuantity(arg string) (int, error) {
	qty, err := strconv.Atoi(arg)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid quantity %q", arg))
	}
	return qty, nil
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
