package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Invoicing-api/pkg/config"
)

const defaultMaxConns = 25

// PoolOption adjusts the pool configuration before the pool is opened.
type PoolOption func(*pgxpool.Config)

// WithMaxConns caps the pool size. Non-positive values keep the default.
func WithMaxConns(n int) PoolOption {
	return func(c *pgxpool.Config) {
		if n <= 0 {
			return
		}
		c.MaxConns = int32(n)
		if c.MinConns > c.MaxConns {
			c.MinConns = c.MaxConns
		}
	}
}

// WithIPv4Dial dials the IPv4 address of the database host when it has one.
// Useful on container networks without IPv6 routes.
func WithIPv4Dial() PoolOption {
	return func(c *pgxpool.Config) {
		c.ConnConfig.DialFunc = dialIPv4
	}
}

// NewPool opens and pings a connection pool from the DB settings.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	opts := []PoolOption{WithMaxConns(cfg.MaxConns)}
	if cfg.PreferIPv4 {
		opts = append(opts, WithIPv4Dial())
	}
	return NewPoolFromDSN(ctx, cfg.ConnectionString(), opts...)
}

// NewPoolFromDSN opens a pool for dsn with the decimal codec registered on every connection.
func NewPoolFromDSN(ctx context.Context, dsn string, opts ...PoolOption) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfig(dsn, opts...)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func poolConfig(dsn string, opts ...PoolOption) (*pgxpool.Config, error) {
	c, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	c.MaxConns = defaultMaxConns
	c.MinConns = 2
	c.MaxConnLifetime = time.Hour
	c.MaxConnIdleTime = 30 * time.Minute
	c.HealthCheckPeriod = time.Minute
	c.AfterConnect = registerTypes
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// registerTypes maps NUMERIC to shopspring/decimal.
func registerTypes(_ context.Context, conn *pgx.Conn) error {
	pgxdecimal.Register(conn.TypeMap())
	return nil
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := ipv4Of(ctx, net.DefaultResolver, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// ipv4Of returns host when it is an IPv4 literal, otherwise its first A record.
func ipv4Of(ctx context.Context, r *net.Resolver, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s is an IPv6 address", host)
	}
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no IPv4 address for %s", host)
	}
	return ips[0].String(), nil
}
