package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"limitless/internal/config"
	"limitless/internal/engine"
	"limitless/internal/logging"
	"limitless/internal/storage"
	"limitless/internal/ui"
)

// app is everything a command needs, wired from the environment.
type app struct {
	cfg config.Config
	svc *engine.Service

	// Set only for the sqlite store.
	sqlite *storage.SQLiteStore
	events *storage.EventRepo

	close func()
}

func openApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(stderr, cfg.LogLevel)

	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, close: func() {}}
	sinks := engine.MultiSink{engine.LogSink{Logger: log}}
	var store engine.SnapshotStore

	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.DBPath
		if path == "" {
			if path, err = storage.DefaultDBPath(); err != nil {
				return nil, err
			}
		}
		db, err := storage.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		a.sqlite = storage.NewSQLiteStore(db)
		a.events = storage.NewEventRepo(db)
		a.close = func() { _ = db.Close() }
		store = a.sqlite
		sinks = append(sinks, a.events)
	case config.StoreRedis:
		client, err := storage.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.close = func() { _ = client.Close() }
		store = storage.NewRedisStore(client, cfg.RedisPrefix)
	default:
		store = storage.NewMemoryStore()
	}

	a.svc = engine.NewService(store, sinks,
		engine.WithRules(rules),
		engine.WithCatalog(catalog),
		engine.WithLogger(log),
	)
	if err := a.svc.Load(ctx); err != nil {
		if !engine.IsMalformed(err) {
			a.close()
			return nil, err
		}
		fmt.Fprintln(stderr, ui.Warn.Render(ui.IconWarn+" Stored progress could not be read; starting fresh. Older revisions: lp history"))
	}
	return a, nil
}

// loadCatalog returns the built-in templates, overlaid with the YAML file at
// path when one is configured.
func loadCatalog(path string) (engine.Catalog, error) {
	base := engine.DefaultCatalog()
	if path == "" {
		return base, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return engine.Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	extra, err := engine.LoadCatalogYAML(f)
	if err != nil {
		return engine.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return base.Merge(extra), nil
}

var errNeedsSQLite = errors.New("this command needs LIMITLESS_STORE=sqlite")

func printEvents(w io.Writer, events []engine.Event) {
	for _, e := range events {
		fmt.Fprintln(w, ui.EventLine(e))
	}
}
