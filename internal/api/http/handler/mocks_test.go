package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fieldscope/field-inspector/internal/model"
	"github.com/fieldscope/field-inspector/internal/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, displayName string) (model.User, model.Session, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.Get(0).(model.User), args.Get(1).(model.Session), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (model.User, model.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Get(1).(model.Session), args.Error(2)
}

// MockIngestService mocks the IngestService interface
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Ingest(ctx context.Context, params service.IngestParams) (service.IngestResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(service.IngestResult), args.Error(1)
}

// MockRecordService mocks the RecordService interface
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) List(ctx context.Context, params model.ListRecordsParams) ([]model.InspectionRecord, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]model.InspectionRecord), args.Int(1), args.Error(2)
}

func (m *MockRecordService) Get(ctx context.Context, id, userID string) (model.InspectionRecord, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(model.InspectionRecord), args.Error(1)
}

func (m *MockRecordService) Update(ctx context.Context, id, userID string, params model.UpdateRecordParams) (model.InspectionRecord, error) {
	args := m.Called(ctx, id, userID, params)
	return args.Get(0).(model.InspectionRecord), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRecordService) Stats(ctx context.Context, userID string) (model.RecordStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.RecordStats), args.Error(1)
}
