package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

type TokenServiceSuite struct {
	suite.Suite
	storage   *mockTokenStorage
	exchanger *mockTokenExchanger
	service   *TokenService
	now       time.Time
}

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

func (suite *TokenServiceSuite) SetupTest() {
	suite.storage = &mockTokenStorage{}
	suite.exchanger = &mockTokenExchanger{}
	suite.service = NewTokenService(suite.storage, suite.exchanger)
	suite.now = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
}

func (suite *TokenServiceSuite) TearDownTest() {
	suite.storage.AssertExpectations(suite.T())
	suite.exchanger.AssertExpectations(suite.T())
}

func (suite *TokenServiceSuite) record(accessToken string, expiresAt time.Time) *domain.TokenRecord {
	return &domain.TokenRecord{
		ID:           uuid.New(),
		RefreshToken: "refresh-1",
		AccessToken:  &accessToken,
		ExpiresAt:    &expiresAt,
		UpdatedAt:    suite.now.Add(-time.Hour),
	}
}

func (suite *TokenServiceSuite) TestCachedTokenStillValid() {
	ctx := context.Background()
	// Expiry comfortably beyond the 5 minute buffer: no exchange happens.
	suite.storage.On("LoadLatest", ctx).Return(suite.record("cached-token", suite.now.Add(time.Hour)), nil)

	token, err := suite.service.AccessToken(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "cached-token", token)
	suite.exchanger.AssertNotCalled(suite.T(), "Refresh", mock.Anything, mock.Anything)
}

func (suite *TokenServiceSuite) TestTokenWithinBufferIsRefreshed() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(suite.record("stale-token", suite.now.Add(2*time.Minute)), nil)
	suite.exchanger.On("Refresh", ctx, "refresh-1").Return(&domain.AccessCredential{
		AccessToken: "fresh-token",
		ExpiresAt:   suite.now.Add(time.Hour),
	}, nil).Once()
	suite.storage.On("Upsert", ctx, mock.MatchedBy(func(r *domain.TokenRecord) bool {
		return r.AccessToken != nil && *r.AccessToken == "fresh-token" &&
			r.ExpiresAt != nil && r.ExpiresAt.Equal(suite.now.Add(time.Hour)) &&
			r.UpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	token, err := suite.service.AccessToken(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "fresh-token", token)
}

func (suite *TokenServiceSuite) TestExpiredTokenIsRefreshed() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(suite.record("expired-token", suite.now.Add(-time.Minute)), nil)
	suite.exchanger.On("Refresh", ctx, "refresh-1").Return(&domain.AccessCredential{
		AccessToken: "fresh-token",
		ExpiresAt:   suite.now.Add(time.Hour),
	}, nil).Once()
	suite.storage.On("Upsert", ctx, mock.Anything).Return(nil)

	token, err := suite.service.AccessToken(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "fresh-token", token)
}

func (suite *TokenServiceSuite) TestNoRecordMeansNotConnected() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(nil, nil)

	_, err := suite.service.AccessToken(ctx)

	var authErr *domain.AuthError
	if assert.ErrorAs(suite.T(), err, &authErr) {
		assert.True(suite.T(), authErr.NotConnected)
	}
}

func (suite *TokenServiceSuite) TestEmptyRefreshTokenMeansNotConnected() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(&domain.TokenRecord{ID: uuid.New()}, nil)

	_, err := suite.service.AccessToken(ctx)

	var authErr *domain.AuthError
	if assert.ErrorAs(suite.T(), err, &authErr) {
		assert.True(suite.T(), authErr.NotConnected)
	}
}

func (suite *TokenServiceSuite) TestLoadFailurePropagates() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(nil, errors.New("db down"))

	_, err := suite.service.AccessToken(ctx)

	assert.ErrorContains(suite.T(), err, "db down")
}

func (suite *TokenServiceSuite) TestExchangerErrorPropagates() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(suite.record("expired", suite.now.Add(-time.Minute)), nil)
	suite.exchanger.On("Refresh", ctx, "refresh-1").Return(nil, &domain.ConfigError{Msg: "missing client id"})

	_, err := suite.service.AccessToken(ctx)

	var cfgErr *domain.ConfigError
	assert.ErrorAs(suite.T(), err, &cfgErr)
}

func (suite *TokenServiceSuite) TestPersistFailureStillReturnsToken() {
	ctx := context.Background()
	suite.storage.On("LoadLatest", ctx).Return(suite.record("expired", suite.now.Add(-time.Minute)), nil)
	suite.exchanger.On("Refresh", ctx, "refresh-1").Return(&domain.AccessCredential{
		AccessToken: "fresh-token",
		ExpiresAt:   suite.now.Add(time.Hour),
	}, nil)
	suite.storage.On("Upsert", ctx, mock.Anything).Return(errors.New("write failed"))

	token, err := suite.service.AccessToken(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "fresh-token", token)
}
