package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/muellerzr/huggingface-hub/hub"
)

// MaxQueryLimit bounds how many records one search returns. Clients page
// through larger result sets.
const MaxQueryLimit = 1000

// Service implements the mirror operations over a store, an optional
// cache and the upstream hub.
type Service struct {
	store    Store
	cache    Cache
	upstream Upstream
	// syncLimit caps how many models and datasets one sync pulls.
	syncLimit int

	syncMu sync.Mutex
}

// NewService wires a mirror service. cache may be nil.
func NewService(store Store, cache Cache, upstream Upstream, syncLimit int) *Service {
	return &Service{
		store:     store,
		cache:     cache,
		upstream:  upstream,
		syncLimit: syncLimit,
	}
}

// Sync pulls tag vocabularies and repository records from the upstream hub
// and upserts them into the store. Only one sync runs at a time; a second
// caller gets ErrSyncInProgress. A failed sync leaves previously mirrored
// data untouched.
func (s *Service) Sync(ctx context.Context) (*SyncState, error) {
	if !s.syncMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	modelTags, err := s.upstream.ModelTagsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull model tags: %w", err)
	}
	datasetTags, err := s.upstream.DatasetTagsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull dataset tags: %w", err)
	}

	models, err := s.upstream.ListModels(ctx, &hub.ModelListOptions{Limit: s.syncLimit, Full: true})
	if err != nil {
		return nil, fmt.Errorf("pull models: %w", err)
	}
	datasets, err := s.upstream.ListDatasets(ctx, &hub.DatasetListOptions{Limit: s.syncLimit, Full: true})
	if err != nil {
		return nil, fmt.Errorf("pull datasets: %w", err)
	}

	flatModelTags := flattenTags(modelTags)
	flatDatasetTags := flattenTags(datasetTags)

	if err := s.store.ReplaceTags(ctx, RepoTypeModels, flatModelTags); err != nil {
		return nil, fmt.Errorf("store model tags: %w", err)
	}
	if err := s.store.ReplaceTags(ctx, RepoTypeDatasets, flatDatasetTags); err != nil {
		return nil, fmt.Errorf("store dataset tags: %w", err)
	}
	if err := s.store.UpsertModels(ctx, models); err != nil {
		return nil, fmt.Errorf("store models: %w", err)
	}
	if err := s.store.UpsertDatasets(ctx, datasets); err != nil {
		return nil, fmt.Errorf("store datasets: %w", err)
	}

	state := SyncState{
		LastSync: time.Now().UTC(),
		Models:   len(models),
		Datasets: len(datasets),
		Tags:     len(flatModelTags) + len(flatDatasetTags),
	}
	if err := s.store.SaveState(ctx, state); err != nil {
		return nil, fmt.Errorf("store sync state: %w", err)
	}

	if s.cache != nil {
		// Best effort: on failure, stale entries age out via their TTL.
		_ = s.cache.Flush(ctx)
	}
	return &state, nil
}

// Status reports the last sync. A mirror that has never synced reports a
// zero state.
func (s *Service) Status(ctx context.Context) (*SyncState, error) {
	state, err := s.store.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sync state: %w", err)
	}
	if state == nil {
		return &SyncState{}, nil
	}
	return state, nil
}

// SearchModels queries the mirrored models. Limits are clamped to
// MaxQueryLimit; 0 means one full page.
func (s *Service) SearchModels(ctx context.Context, q Query) ([]*hub.ModelInfo, error) {
	q = clampQuery(q)
	models, err := s.store.SearchModels(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search models: %w", err)
	}
	return models, nil
}

// GetModel returns one mirrored model record.
func (s *Service) GetModel(ctx context.Context, id string) (*hub.ModelInfo, error) {
	if id == "" {
		return nil, ErrModelNotFound
	}
	model, err := s.store.GetModel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get model %q: %w", id, err)
	}
	return model, nil
}

// SearchDatasets queries the mirrored datasets.
func (s *Service) SearchDatasets(ctx context.Context, q Query) ([]*hub.DatasetInfo, error) {
	q = clampQuery(q)
	datasets, err := s.store.SearchDatasets(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search datasets: %w", err)
	}
	return datasets, nil
}

// GetDataset returns one mirrored dataset record.
func (s *Service) GetDataset(ctx context.Context, id string) (*hub.DatasetInfo, error) {
	if id == "" {
		return nil, ErrDatasetNotFound
	}
	dataset, err := s.store.GetDataset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dataset %q: %w", id, err)
	}
	return dataset, nil
}

// TagsByType returns the mirrored tag vocabulary grouped by facet, in the
// same shape the hub serves.
func (s *Service) TagsByType(ctx context.Context, repoType string) (map[string][]Tag, error) {
	if repoType != RepoTypeModels && repoType != RepoTypeDatasets {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepoType, repoType)
	}
	tags, err := s.store.TagsByType(ctx, repoType)
	if err != nil {
		return nil, fmt.Errorf("load %s tags: %w", repoType, err)
	}
	grouped := make(map[string][]Tag, 8)
	for _, t := range tags {
		grouped[t.Facet] = append(grouped[t.Facet], t)
	}
	return grouped, nil
}

func clampQuery(q Query) Query {
	if q.Limit <= 0 || q.Limit > MaxQueryLimit {
		q.Limit = MaxQueryLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func flattenTags(payload map[string][]hub.TagItem) []Tag {
	var tags []Tag
	for facet, items := range payload {
		for _, item := range items {
			tags = append(tags, Tag{ID: item.ID, Label: item.Label, Facet: facet})
		}
	}
	return tags
}
