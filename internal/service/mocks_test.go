package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/fieldscope/field-inspector/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// MockRecordStore mocks the RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Create(ctx context.Context, record model.InspectionRecord) (model.InspectionRecord, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(model.InspectionRecord), args.Error(1)
}

func (m *MockRecordStore) List(ctx context.Context, params model.ListRecordsParams) ([]model.InspectionRecord, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]model.InspectionRecord), args.Int(1), args.Error(2)
}

func (m *MockRecordStore) Get(ctx context.Context, id, userID string) (model.InspectionRecord, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(model.InspectionRecord), args.Error(1)
}

func (m *MockRecordStore) Update(ctx context.Context, id, userID string, params model.UpdateRecordParams) (model.InspectionRecord, error) {
	args := m.Called(ctx, id, userID, params)
	return args.Get(0).(model.InspectionRecord), args.Error(1)
}

func (m *MockRecordStore) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRecordStore) Stats(ctx context.Context, userID string) (model.RecordStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.RecordStats), args.Error(1)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// MockSpeechBackend mocks the SpeechBackend interface
type MockSpeechBackend struct {
	mock.Mock
}

func (m *MockSpeechBackend) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	args := m.Called(ctx, audio, contentType)
	return args.String(0), args.Error(1)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Parse(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}
