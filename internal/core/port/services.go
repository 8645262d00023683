package port

import (
	"context"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

type SyncService interface {
	Run(ctx context.Context, daysBack, daysAhead int) (*domain.SyncReport, error)
}

type TokenService interface {
	// AccessToken returns a usable calendar access token, refreshing and
	// persisting it when the cached one is missing or about to expire.
	AccessToken(ctx context.Context) (string, error)
}
