package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"slash-sync-bot/internal/snapshot"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the pgx surface the store needs; satisfied by *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS command_snapshots (
	guild_id   TEXT PRIMARY KEY,
	snapshots  JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps one snapshot-set row per guild in a JSONB column.
type PostgresStore struct {
	pool *pgxpool.Pool
	db   DB
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{pool: pool, db: pool}, nil
}

func (s *PostgresStore) SaveSnapshots(ctx context.Context, guildID string, snaps []snapshot.CommandSnapshot) error {
	data, err := json.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO command_snapshots (guild_id, snapshots, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (guild_id)
		DO UPDATE SET snapshots = EXCLUDED.snapshots, updated_at = now()`,
		guildID, data)
	if err != nil {
		return fmt.Errorf("save snapshots: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadSnapshots(ctx context.Context, guildID string) ([]snapshot.CommandSnapshot, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT snapshots FROM command_snapshots WHERE guild_id = $1`, guildID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	var snaps []snapshot.CommandSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, fmt.Errorf("unmarshal snapshots: %w", err)
	}
	return snaps, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
