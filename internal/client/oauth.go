package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

// GoogleTokenExchanger trades the long-lived refresh token for a short-lived
// access token at Google's token endpoint.
type GoogleTokenExchanger struct {
	clientID     string
	clientSecret string
}

func NewGoogleTokenExchanger(clientID, clientSecret string) *GoogleTokenExchanger {
	return &GoogleTokenExchanger{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (g *GoogleTokenExchanger) Refresh(ctx context.Context, refreshToken string) (*domain.AccessCredential, error) {
	if g.clientID == "" || g.clientSecret == "" {
		return nil, &domain.ConfigError{
			Msg: "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set",
		}
	}

	conf := &oauth2.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		Endpoint:     google.Endpoint,
	}

	token, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &domain.AuthError{
				Msg: fmt.Sprintf("token refresh failed (%d): %s",
					retrieveErr.Response.StatusCode,
					domain.TruncateBody(string(retrieveErr.Body))),
			}
		}
		return nil, &domain.AuthError{Msg: fmt.Sprintf("token refresh failed: %v", err)}
	}

	return &domain.AccessCredential{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.Expiry,
	}, nil
}
