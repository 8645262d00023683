package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

// TokensStorage persists the Google Calendar OAuth credential. The row is
// created once by the consent flow; the sync only refreshes the access token
// in place.
type TokensStorage struct {
	db *PostgresDB
}

func NewTokensStorage(db *PostgresDB) *TokensStorage {
	return &TokensStorage{
		db: db,
	}
}

// LoadLatest returns the most recently updated token record. Most-recent
// wins: redoing the consent flow simply makes a newer row the live one.
func (s *TokensStorage) LoadLatest(ctx context.Context) (*domain.TokenRecord, error) {
	var record domain.TokenRecord
	err := s.db.QueryRow(ctx,
		`SELECT id, refresh_token, access_token, expires_at, updated_at
		 FROM google_calendar_tokens
		 ORDER BY updated_at DESC
		 LIMIT 1`,
	).Scan(&record.ID, &record.RefreshToken, &record.AccessToken, &record.ExpiresAt, &record.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *TokensStorage) Upsert(ctx context.Context, record *domain.TokenRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO google_calendar_tokens (id, refresh_token, access_token, expires_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id)
		 DO UPDATE SET
		     refresh_token = EXCLUDED.refresh_token,
		     access_token = EXCLUDED.access_token,
		     expires_at = EXCLUDED.expires_at,
		     updated_at = EXCLUDED.updated_at`,
		record.ID,
		record.RefreshToken,
		record.AccessToken,
		record.ExpiresAt,
		record.UpdatedAt,
	)

	return err
}
