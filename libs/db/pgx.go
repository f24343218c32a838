// Package db opens the service's Postgres pool.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Pool struct {
	*pgxpool.Pool
}

// Options overrides pool sizing. Zero values keep the defaults below.
type Options struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	// ConnectTimeout bounds the initial ping.
	ConnectTimeout time.Duration
}

const (
	defaultMaxConns        = 10
	defaultMinConns        = 1
	defaultMaxConnLifetime = 30 * time.Minute
	defaultConnectTimeout  = 10 * time.Second
)

func Open(ctx context.Context, databaseURL string, opts Options) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = pick(opts.MaxConns, defaultMaxConns)
	cfg.MinConns = pick(opts.MinConns, defaultMinConns)
	if cfg.MinConns > cfg.MaxConns {
		cfg.MinConns = cfg.MaxConns
	}
	cfg.MaxConnLifetime = pick(opts.MaxConnLifetime, defaultMaxConnLifetime)
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, pick(opts.ConnectTimeout, defaultConnectTimeout))
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Pool{Pool: pool}, nil
}

func (p *Pool) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

func ReadyCheck(pool *Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if pool == nil || pool.Pool == nil {
			return errors.New("db not configured")
		}
		return pool.Ping(ctx)
	}
}

func pick[T int32 | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
