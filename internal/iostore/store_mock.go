package iostore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fabgilson/scrumboard-throwaway-sub001/internal/contract"
	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// GetCacheStore implements the StoreManager interface.
func (m *MockStoreManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// GetScope implements the HistoryStore interface.
func (m *MockHistoryStore) GetScope(ctx context.Context, kind schema.ScopeKind, id int64) (schema.Scope, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(schema.Scope), args.Error(1)
}

// ListTaskHistories implements the HistoryStore interface.
func (m *MockHistoryStore) ListTaskHistories(ctx context.Context, scope schema.Scope) ([]schema.TaskHistory, error) {
	args := m.Called(ctx, scope)
	histories, _ := args.Get(0).([]schema.TaskHistory)
	return histories, args.Error(1)
}

// GetTaskHistory implements the HistoryStore interface.
func (m *MockHistoryStore) GetTaskHistory(ctx context.Context, taskID int64) (schema.TaskHistory, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(schema.TaskHistory), args.Error(1)
}

// Fingerprint implements the HistoryStore interface.
func (m *MockHistoryStore) Fingerprint(ctx context.Context, scope schema.Scope) (string, error) {
	args := m.Called(ctx, scope)
	return args.String(0), args.Error(1)
}

// GetTask implements the HistoryStore interface.
func (m *MockHistoryStore) GetTask(ctx context.Context, id int64) (schema.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.Task), args.Error(1)
}

// GetChangelogEntry implements the HistoryStore interface.
func (m *MockHistoryStore) GetChangelogEntry(ctx context.Context, id int64) (schema.ChangelogEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.ChangelogEntry), args.Error(1)
}

// GetWorklog implements the HistoryStore interface.
func (m *MockHistoryStore) GetWorklog(ctx context.Context, id int64) (schema.Worklog, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.Worklog), args.Error(1)
}

// ImportBoard implements the HistoryStore interface.
func (m *MockHistoryStore) ImportBoard(ctx context.Context, board schema.Board) (schema.ImportSummary, error) {
	args := m.Called(ctx, board)
	return args.Get(0).(schema.ImportSummary), args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
