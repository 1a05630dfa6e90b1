package services

import (
	"context"

	"github.com/EO-DataHub/eodhp-resource-services/internal/events"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/stretchr/testify/mock"
)

type MockCollectionStore struct {
	mock.Mock
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockCollectionStore) Load(ctx context.Context, name string) ([]models.Record, error) {
	args := m.Called(ctx, name)
	records, _ := args.Get(0).([]models.Record)
	return records, args.Error(1)
}

func (m *MockCollectionStore) Save(ctx context.Context, name string, records []models.Record) error {
	args := m.Called(ctx, name, records)
	return args.Error(0)
}

func (m *MockCollectionStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockNotifier) Notify(ctx context.Context, event events.EventPayload) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotifier) Close() {
	m.Called()
}
