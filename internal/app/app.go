package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"vrp-client/internal/adapters/cache"
	"vrp-client/internal/adapters/vrphttp"
	"vrp-client/internal/client"
	"vrp-client/internal/config"
	"vrp-client/internal/metrics"
	"vrp-client/internal/platform/db"
	"vrp-client/internal/ports"
)

const defaultSqlitePath = "data/vrp-cache.db"

// Deps holds the adapters shared by every client a process creates.
type Deps struct {
	BaseURL   string
	Transport ports.Transport
	Cache     ports.ScheduleCache

	closers []func() error
}

// Wire builds the transport and the optional schedule cache from cfg and
// installs cfg.Token as the shared default token.
func Wire(ctx context.Context, cfg config.Config) (*Deps, error) {
	metrics.RegisterDefault()

	d := &Deps{
		BaseURL: cfg.BaseURL,
		Transport: vrphttp.New(
			vrphttp.WithTimeout(cfg.Timeout),
			vrphttp.WithMaxAttempts(cfg.MaxAttempts),
			vrphttp.WithRateLimit(cfg.RatePerSec, 1),
		),
	}

	sc, err := d.openCache(ctx, cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("wire: %w", err)
	}
	d.Cache = sc

	client.InitDefaults(client.Defaults{Token: cfg.Token})
	d.closers = append(d.closers, func() error {
		client.ResetDefaults()
		return nil
	})

	return d, nil
}

// NewClient returns a client bound to the shared adapters. An empty token
// falls back to the shared default.
func (d *Deps) NewClient(token string) *client.Client {
	opts := []client.Option{client.WithTransport(d.Transport)}
	if d.Cache != nil {
		opts = append(opts, client.WithCache(d.Cache))
	}
	return client.New(client.Config{Token: token, BaseURL: d.BaseURL}, opts...)
}

func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	d.closers = nil
	return errors.Join(errs...)
}

func (d *Deps) openCache(ctx context.Context, cfg config.Config) (ports.ScheduleCache, error) {
	switch cfg.Cache {
	case config.CacheSqlite:
		path := cfg.CacheDSN
		if path == "" {
			path = defaultSqlitePath
		}
		conn, err := db.OpenSqlite(path)
		if err != nil {
			return nil, err
		}
		if err := d.initSQL(ctx, conn); err != nil {
			return nil, err
		}
		log.Printf("schedule cache=sqlite path=%s ttl=%s", path, cfg.CacheTTL)
		return cache.NewSqliteScheduleCache(conn, cfg.CacheTTL), nil

	case config.CachePostgres:
		if cfg.CacheDSN == "" {
			return nil, errors.New("VRP_CACHE_DSN is required for the postgres cache")
		}
		conn, err := db.Open(cfg.CacheDSN)
		if err != nil {
			return nil, err
		}
		if err := d.initSQL(ctx, conn); err != nil {
			return nil, err
		}
		log.Printf("schedule cache=postgres ttl=%s", cfg.CacheTTL)
		return cache.NewSQLScheduleCache(conn, cfg.CacheTTL), nil

	case config.CacheRedis:
		url := cfg.RedisURL
		if url == "" {
			url = cfg.CacheDSN
		}
		rc, err := cache.NewRedisScheduleCacheFromURL(url, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, rc.Close)
		log.Printf("schedule cache=redis ttl=%s", cfg.CacheTTL)
		return rc, nil
	}

	return nil, nil
}

func (d *Deps) initSQL(ctx context.Context, conn *sql.DB) error {
	d.closers = append(d.closers, conn.Close)
	return cache.InitSchema(ctx, conn)
}
