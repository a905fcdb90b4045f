package mirror

import "errors"

// Not found errors
var (
	ErrModelNotFound   = errors.New("model not found")
	ErrDatasetNotFound = errors.New("dataset not found")
)

// Validation errors
var (
	ErrInvalidRepoType = errors.New("repository type must be models or datasets")
)

// Sync errors
var (
	ErrSyncInProgress = errors.New("a sync is already running")
)
