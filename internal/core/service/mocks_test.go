package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

type mockTokenStorage struct {
	mock.Mock
}

func (m *mockTokenStorage) LoadLatest(ctx context.Context) (*domain.TokenRecord, error) {
	args := m.Called(ctx)
	record, _ := args.Get(0).(*domain.TokenRecord)
	return record, args.Error(1)
}

func (m *mockTokenStorage) Upsert(ctx context.Context, record *domain.TokenRecord) error {
	return m.Called(ctx, record).Error(0)
}

type mockTokenExchanger struct {
	mock.Mock
}

func (m *mockTokenExchanger) Refresh(ctx context.Context, refreshToken string) (*domain.AccessCredential, error) {
	args := m.Called(ctx, refreshToken)
	cred, _ := args.Get(0).(*domain.AccessCredential)
	return cred, args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) AccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockEventSource struct {
	mock.Mock
}

func (m *mockEventSource) ListEvents(ctx context.Context, accessToken string, daysBack, daysAhead int) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, accessToken, daysBack, daysAhead)
	events, _ := args.Get(0).([]domain.CalendarEvent)
	return events, args.Error(1)
}

type mockOrderStorage struct {
	mock.Mock
}

func (m *mockOrderStorage) FindIDByCalendarEventID(ctx context.Context, eventID string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *mockOrderStorage) InsertOrder(ctx context.Context, order *domain.ParsedOrder, eventID string) (uuid.UUID, error) {
	args := m.Called(ctx, order, eventID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockOrderStorage) InsertOrderItems(ctx context.Context, orderID uuid.UUID, items []domain.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyCalendarSynced(ctx context.Context, message *domain.CalendarSyncedMessage) error {
	return m.Called(ctx, message).Error(0)
}
