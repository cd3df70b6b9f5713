package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/five82/tote/internal/binding"
	"github.com/five82/tote/internal/cart"
	"github.com/five82/tote/internal/catalog"
	"github.com/five82/tote/internal/clock"
	"github.com/five82/tote/internal/config"
	"github.com/five82/tote/internal/events"
	"github.com/five82/tote/internal/persist"
	"github.com/five82/tote/internal/state"
)

// Options configure a tote session.
type Options struct {
	ConfigPath string
	// Config skips loading from ConfigPath when set.
	Config *config.Config
	// Storage overrides the configured backend name.
	Storage string
	Logger  *slog.Logger
	Clock   clock.Clock
	Random  state.Random
	// NoJournal disables the on-disk activity journal.
	NoJournal bool
}

// Session is one opened cart: storage, event sinks, the store, and the
// provider presentation code talks to.
type Session struct {
	Config   config.Config
	Logger   *slog.Logger
	KV       persist.KV
	Adapter  *persist.Adapter
	Journal  *events.Journal
	Target   *events.Target
	Store    *state.Store
	Provider *binding.Provider
	Catalog  catalog.Source
	// Restored says where the starting cart came from.
	Restored Origin
}

// Origin identifies the source of a session's starting cart.
type Origin string

const (
	OriginEmpty     Origin = "empty"
	OriginPersisted Origin = "persisted"
	OriginLegacy    Origin = "legacy"
)

// Open loads configuration, opens storage and builds a hydrated store.
func Open(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	kv, err := persist.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	s := &Session{
		Config:  cfg,
		Logger:  logger,
		KV:      kv,
		Adapter: persist.NewAdapter(kv, opts.Clock, logger.With("component", "persist")),
		Target:  events.NewTarget(logger),
	}

	sinks := []events.Sink{events.DOMSink{Target: s.Target}}
	if !opts.NoJournal {
		journal, err := events.OpenJournal(cfg.JournalPath(), logger.With("component", "journal"))
		if err != nil {
			_ = kv.Close()
			return nil, err
		}
		s.Journal = journal
		sinks = append(sinks, journal)
	}

	src, err := NewSource(cfg)
	if err != nil {
		_ = s.closeSinks()
		return nil, err
	}
	s.Catalog = src

	tel := cfg.Telemetry
	jitter := tel.IdleJitter
	if jitter == 0 {
		jitter = -1
	}
	s.Store = state.New(state.Options{
		Clock:          opts.Clock,
		Random:         opts.Random,
		Logger:         logger.With("component", "store"),
		Saver:          s.Adapter,
		Sinks:          sinks,
		IdleThreshold:  tel.IdleThreshold,
		IdleJitter:     jitter,
		BurstThreshold: tel.BurstThreshold,
		ToggleWindow:   tel.ToggleWindow,
		SaveDebounce:   tel.SaveDebounce,
		HoverIntentMin: tel.HoverIntentMin,
	})
	s.Restored = bootstrap(s.Adapter, s.Store)
	s.Provider = binding.NewProvider(s.Store)

	logger.Debug("cart session opened",
		"storage", cfg.Storage,
		"data_dir", cfg.DataDir,
		"restored", s.Restored,
		"items", cart.ItemCount(s.Store.GetState()),
	)
	return s, nil
}

// bootstrap hydrates store from the current slot, or failing that migrates
// the legacy slot and saves the result straight away so the migration is
// not lost if the process exits before the debounce fires.
func bootstrap(adapter *persist.Adapter, store *state.Store) Origin {
	if snap := adapter.LoadPersisted(); snap != nil {
		prefs := snap.Prefs
		store.Dispatch(cart.Hydrate{Items: snap.Items, Prefs: &prefs})
		return OriginPersisted
	}

	legacy := adapter.LoadLegacy()
	if len(legacy) == 0 {
		return OriginEmpty
	}
	items := make(map[int64]cart.Item, len(legacy))
	for _, item := range legacy {
		items[item.ID] = item
	}
	store.Dispatch(cart.Hydrate{Items: items})
	store.Flush()
	return OriginLegacy
}

// NewSource returns the builtin catalog, or an HTTP client when catalog_api
// is configured.
func NewSource(cfg config.Config) (catalog.Source, error) {
	if cfg.CatalogAPI == "" {
		return catalog.NewStatic(nil), nil
	}
	client, err := catalog.NewClient(cfg.CatalogAPI)
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	return client, nil
}

// Checkout empties the cart and its saved slot, as after a successful
// payment. It returns the number of items that were in the cart.
func (s *Session) Checkout() int {
	count := cart.ItemCount(s.Store.GetState())
	s.Store.Dispatch(cart.ClearCart{})
	s.Store.Flush()
	s.Adapter.Clear()
	return count
}

// Close writes any pending save and releases storage and the journal.
func (s *Session) Close() error {
	s.Provider.Close()
	s.Target.RemoveAll()
	return s.closeSinks()
}

func (s *Session) closeSinks() error {
	var errs []error
	if s.Journal != nil {
		if err := s.Journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	if err := s.KV.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
