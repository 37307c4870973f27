package testhelpers

import (
	"context"
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockBonusRecordRepository is a mock implementation of BonusRecordRepository
type MockBonusRecordRepository struct {
	mock.Mock
}

func (m *MockBonusRecordRepository) ListByArtist(ctx context.Context, artist string) ([]entities.BonusRecord, error) {
	args := m.Called(ctx, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BonusRecord), args.Error(1)
}

func (m *MockBonusRecordRepository) ListAll(ctx context.Context) ([]entities.BonusRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BonusRecord), args.Error(1)
}

func (m *MockBonusRecordRepository) ListArtists(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBonusRecordRepository) ReplaceForArtist(ctx context.Context, artist string, records []entities.BonusRecord) error {
	args := m.Called(ctx, artist, records)
	return args.Error(0)
}

// MockArtistRepository is a mock implementation of ArtistRepository
type MockArtistRepository struct {
	mock.Mock
}

func (m *MockArtistRepository) GetByName(ctx context.Context, name string) (*entities.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Artist), args.Error(1)
}

func (m *MockArtistRepository) List(ctx context.Context) ([]*entities.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Artist), args.Error(1)
}

func (m *MockArtistRepository) Upsert(ctx context.Context, artist *entities.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

// MockNotificationLogRepository is a mock implementation of NotificationLogRepository
type MockNotificationLogRepository struct {
	mock.Mock
}

func (m *MockNotificationLogRepository) MarkSent(ctx context.Context, artist string, day time.Time) (bool, error) {
	args := m.Called(ctx, artist, day)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
