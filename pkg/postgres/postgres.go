package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stationops/roster-service/migrations"

	_ "github.com/jackc/pgx/v5/stdlib" //nolint:blank-imports

	goose "github.com/pressly/goose/v3"
)

// Manager owns the database connection lifecycle. It is created once in
// main and injected into everything that needs the pool; there is no
// package-level connected state.
type Manager struct {
	dsn     string
	poolCfg *pgxpool.Config
	pool    *pgxpool.Pool
}

func NewManager(dsn string, maxConns int32) (*Manager, error) {
	dbCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	dbCfg.MaxConns = maxConns

	return &Manager{dsn: dsn, poolCfg: dbCfg}, nil
}

// Connect establishes the pool and waits for the database to answer pings.
func (m *Manager) Connect(ctx context.Context) error {
	pool, err := pgxpool.NewWithConfig(ctx, m.poolCfg)
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}

	const timeout = 500 * time.Millisecond

	for i := 0; i < 10; i++ {
		err = pool.Ping(ctx)
		if err == nil {
			m.pool = pool
			return nil
		}

		time.Sleep(timeout)
	}

	pool.Close()

	return fmt.Errorf("ping: %w", err)
}

// Pool panics when called before Connect; wiring order is a programmer
// error, not a runtime condition.
func (m *Manager) Pool() *pgxpool.Pool {
	if m.pool == nil {
		panic("postgres: Pool called before Connect")
	}

	return m.pool
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.pool == nil {
		return errors.New("not connected")
	}

	return m.pool.Ping(ctx)
}

func (m *Manager) Close() {
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}

func (m *Manager) UpMigrations() error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	err = goose.SetDialect("postgres")
	if err != nil {
		return err
	}

	err = goose.Up(db, ".")
	if err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
		return err
	}

	return nil
}
