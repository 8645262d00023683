package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
	"github.com/swvikum/cake-bucket-sync/internal/core/port"
)

// expiryBuffer guards against clock skew and in-flight request latency: a
// cached access token is only reused when it outlives now by this much.
const expiryBuffer = 5 * time.Minute

type TokenService struct {
	storage   port.TokenStorage
	exchanger port.TokenExchanger
	now       func() time.Time
}

func NewTokenService(storage port.TokenStorage, exchanger port.TokenExchanger) *TokenService {
	return &TokenService{
		storage:   storage,
		exchanger: exchanger,
		now:       time.Now,
	}
}

func (s *TokenService) AccessToken(ctx context.Context) (string, error) {
	record, err := s.storage.LoadLatest(ctx)
	if err != nil {
		return "", fmt.Errorf("load calendar tokens: %w", err)
	}
	if record == nil || record.RefreshToken == "" {
		return "", &domain.AuthError{
			Msg:          "no calendar tokens on file; complete the consent flow first",
			NotConnected: true,
		}
	}

	now := s.now()
	if record.AccessToken != nil && record.ExpiresAt != nil && record.ExpiresAt.After(now.Add(expiryBuffer)) {
		return *record.AccessToken, nil
	}

	cred, err := s.exchanger.Refresh(ctx, record.RefreshToken)
	if err != nil {
		return "", err
	}

	record.AccessToken = &cred.AccessToken
	record.ExpiresAt = &cred.ExpiresAt
	record.UpdatedAt = now

	// Best effort: a failed write only costs an extra refresh on the next
	// run, the fresh token is still good for this one.
	if err := s.storage.Upsert(ctx, record); err != nil {
		log.WithError(err).Warn("Failed to persist refreshed calendar token")
	}

	return cred.AccessToken, nil
}
