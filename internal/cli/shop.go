package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/tote/internal/app"
)

// NewShopCommand creates the shop command, the interactive storefront.
func NewShopCommand(opts *RootOptions) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and fill the cart interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if theme != "" {
				cfg.Theme = theme
			}

			// The terminal belongs to the UI, so logs go to a file.
			if err := ensureDir(cfg.DataDir); err != nil {
				return WrapExitError(ExitCommandError, "failed to create data dir", err)
			}
			logFile, err := openLogFile(cfg.LogPath())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open log file", err)
			}
			defer func() { _ = logFile.Close() }()
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

			if err := app.Run(cmd.Context(), app.Options{Config: &cfg, Logger: logger}); err != nil {
				return WrapExitError(ExitFailure, "storefront failed", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (Nightfox|Kanagawa|Slate)")
	return cmd
}
