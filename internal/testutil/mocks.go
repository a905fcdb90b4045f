package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/muellerzr/huggingface-hub/hub"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

// MockStore is a mock of mirror.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) UpsertModels(ctx context.Context, models []*hub.ModelInfo) error {
	args := m.Called(ctx, models)
	return args.Error(0)
}

func (m *MockStore) UpsertDatasets(ctx context.Context, datasets []*hub.DatasetInfo) error {
	args := m.Called(ctx, datasets)
	return args.Error(0)
}

func (m *MockStore) ReplaceTags(ctx context.Context, repoType string, tags []mirror.Tag) error {
	args := m.Called(ctx, repoType, tags)
	return args.Error(0)
}

func (m *MockStore) SearchModels(ctx context.Context, q mirror.Query) ([]*hub.ModelInfo, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.ModelInfo), args.Error(1)
}

func (m *MockStore) GetModel(ctx context.Context, id string) (*hub.ModelInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.ModelInfo), args.Error(1)
}

func (m *MockStore) SearchDatasets(ctx context.Context, q mirror.Query) ([]*hub.DatasetInfo, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.DatasetInfo), args.Error(1)
}

func (m *MockStore) GetDataset(ctx context.Context, id string) (*hub.DatasetInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.DatasetInfo), args.Error(1)
}

func (m *MockStore) TagsByType(ctx context.Context, repoType string) ([]mirror.Tag, error) {
	args := m.Called(ctx, repoType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mirror.Tag), args.Error(1)
}

func (m *MockStore) SaveState(ctx context.Context, state mirror.SyncState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockStore) LoadState(ctx context.Context) (*mirror.SyncState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mirror.SyncState), args.Error(1)
}

// MockCache is a mock of mirror.Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte) {
	m.Called(ctx, key, value)
}

func (m *MockCache) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUpstream is a mock of mirror.Upstream.
type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) ListModels(ctx context.Context, opts *hub.ModelListOptions) ([]*hub.ModelInfo, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.ModelInfo), args.Error(1)
}

func (m *MockUpstream) ListDatasets(ctx context.Context, opts *hub.DatasetListOptions) ([]*hub.DatasetInfo, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.DatasetInfo), args.Error(1)
}

func (m *MockUpstream) ModelTagsByType(ctx context.Context) (map[string][]hub.TagItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]hub.TagItem), args.Error(1)
}

func (m *MockUpstream) DatasetTagsByType(ctx context.Context) (map[string][]hub.TagItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]hub.TagItem), args.Error(1)
}

// MockMirrorService is a mock of httpapi.Service.
type MockMirrorService struct {
	mock.Mock
}

func (m *MockMirrorService) Sync(ctx context.Context) (*mirror.SyncState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mirror.SyncState), args.Error(1)
}

func (m *MockMirrorService) Status(ctx context.Context) (*mirror.SyncState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mirror.SyncState), args.Error(1)
}

func (m *MockMirrorService) SearchModels(ctx context.Context, q mirror.Query) ([]*hub.ModelInfo, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.ModelInfo), args.Error(1)
}

func (m *MockMirrorService) GetModel(ctx context.Context, id string) (*hub.ModelInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.ModelInfo), args.Error(1)
}

func (m *MockMirrorService) SearchDatasets(ctx context.Context, q mirror.Query) ([]*hub.DatasetInfo, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.DatasetInfo), args.Error(1)
}

func (m *MockMirrorService) GetDataset(ctx context.Context, id string) (*hub.DatasetInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.DatasetInfo), args.Error(1)
}

func (m *MockMirrorService) TagsByType(ctx context.Context, repoType string) (map[string][]mirror.Tag, error) {
	args := m.Called(ctx, repoType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]mirror.Tag), args.Error(1)
}
