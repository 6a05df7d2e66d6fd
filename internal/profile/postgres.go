package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

// PostgresStore reads and writes the users.voice_settings column in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT,
			role TEXT,
			voice_settings JSONB
		);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) GetVoiceSettings(ctx context.Context, userID string) (voice.Settings, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT voice_settings FROM users WHERE id=$1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return voice.Settings{}, voice.ErrSettingsNotFound
	}
	if err != nil {
		return voice.Settings{}, fmt.Errorf("query voice settings: %w", err)
	}
	if len(raw) == 0 {
		return voice.Settings{}, voice.ErrSettingsNotFound
	}

	settings, err := voice.DecodeSettings(raw)
	if err != nil {
		return voice.Settings{}, fmt.Errorf("decode voice settings: %w", err)
	}
	return settings, nil
}

func (s *PostgresStore) UpdateVoiceSettings(ctx context.Context, userID string, settings voice.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode voice settings: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, voice_settings) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET voice_settings = EXCLUDED.voice_settings`,
		userID,
		raw,
	)
	if err != nil {
		return fmt.Errorf("update voice settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update voice settings: no row written for %s", userID)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
