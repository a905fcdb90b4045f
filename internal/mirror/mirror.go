// Package mirror keeps a local, queryable replica of the hub's model and
// dataset catalog. A sync pulls records and tag vocabularies through the
// hub client into a store; the HTTP layer then serves them in the same
// shapes as the hub itself, so the client SDK works unchanged against a
// mirror endpoint.
package mirror

import (
	"context"
	"time"

	"github.com/muellerzr/huggingface-hub/hub"
)

// Repository types the mirror replicates.
const (
	RepoTypeModels   = "models"
	RepoTypeDatasets = "datasets"
)

// Tag is one allowed filter value for a facet, as served by the
// tags-by-type endpoints.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Facet string `json:"type"`
}

// SyncState records the outcome of the last successful sync.
type SyncState struct {
	LastSync time.Time `json:"lastSync"`
	Models   int       `json:"models"`
	Datasets int       `json:"datasets"`
	Tags     int       `json:"tags"`
}

// Query mirrors the hub's listing parameters for local search. Filters
// follow the hub grammar: each value ("pytorch", "dataset:imdb",
// "license:mit") must appear in the record's tag list.
type Query struct {
	Search     string
	Author     string
	Filters    []string
	Sort       string
	Descending bool
	Limit      int
	Offset     int
	// Full includes file listings and card data in the results.
	Full bool
}

// Store persists mirrored records.
type Store interface {
	// Init creates the schema when it does not exist yet.
	Init(ctx context.Context) error

	UpsertModels(ctx context.Context, models []*hub.ModelInfo) error
	UpsertDatasets(ctx context.Context, datasets []*hub.DatasetInfo) error
	// ReplaceTags swaps the complete tag table for one repository type.
	ReplaceTags(ctx context.Context, repoType string, tags []Tag) error

	SearchModels(ctx context.Context, q Query) ([]*hub.ModelInfo, error)
	GetModel(ctx context.Context, id string) (*hub.ModelInfo, error)
	SearchDatasets(ctx context.Context, q Query) ([]*hub.DatasetInfo, error)
	GetDataset(ctx context.Context, id string) (*hub.DatasetInfo, error)
	TagsByType(ctx context.Context, repoType string) ([]Tag, error)

	SaveState(ctx context.Context, state SyncState) error
	// LoadState returns nil when the mirror has never synced.
	LoadState(ctx context.Context) (*SyncState, error)
}

// Cache holds rendered responses between syncs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Flush(ctx context.Context) error
}

// Upstream is the slice of the hub client the sync needs.
type Upstream interface {
	ListModels(ctx context.Context, opts *hub.ModelListOptions) ([]*hub.ModelInfo, error)
	ListDatasets(ctx context.Context, opts *hub.DatasetListOptions) ([]*hub.DatasetInfo, error)
	ModelTagsByType(ctx context.Context) (map[string][]hub.TagItem, error)
	DatasetTagsByType(ctx context.Context) (map[string][]hub.TagItem, error)
}

var _ Upstream = (*hub.Client)(nil)
