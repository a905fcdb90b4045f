package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SiblingFile is one entry of a repository file listing. Rfilename is the
// path relative to the repository root.
type SiblingFile struct {
	Rfilename string `json:"rfilename"`
}

// ModelInfo is a model repository record as returned by /api/models.
// Listing responses omit the heavyweight fields (Siblings, Config) unless
// requested with ModelListOptions.Full / Config.
type ModelInfo struct {
	ID           string          `json:"id"`
	ModelID      string          `json:"modelId,omitempty"`
	Author       string          `json:"author,omitempty"`
	SHA          string          `json:"sha,omitempty"`
	LastModified time.Time       `json:"lastModified"`
	Private      bool            `json:"private"`
	Downloads    int64           `json:"downloads"`
	Likes        int64           `json:"likes"`
	LibraryName  string          `json:"library_name,omitempty"`
	PipelineTag  string          `json:"pipeline_tag,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Siblings     []SiblingFile   `json:"siblings,omitempty"`
	Config       json.RawMessage `json:"config,omitempty"`
	CardData     json.RawMessage `json:"cardData,omitempty"`
}

// RepoID returns the canonical repository id. Older API payloads carry it
// in modelId rather than id.
func (m *ModelInfo) RepoID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.ModelID
}

// Files returns the relative paths of the repository file listing. It is
// empty unless the record was fetched with file listings included.
func (m *ModelInfo) Files() []string {
	files := make([]string, 0, len(m.Siblings))
	for _, s := range m.Siblings {
		files = append(files, s.Rfilename)
	}
	return files
}

// Direction orders listing results. Only descending order is transmitted;
// ascending is the server default.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// ModelListOptions narrows and shapes a ListModels call. The zero value
// lists everything in server order.
type ModelListOptions struct {
	// Filter selects models by facet values (task, library, license, ...).
	Filter *ModelFilter
	// Search is a free-text query over repository names. It overrides a
	// name derived from Filter.
	Search string
	// Author restricts results to one user or organization. It overrides
	// an author set on Filter.
	Author string
	// Sort names the record field to order by, e.g. "downloads" or
	// "lastModified".
	Sort      string
	Direction Direction
	// Limit caps the number of records returned. 0 means no client-side
	// cap; the server may still paginate.
	Limit int
	// Full requests file listings along with each record.
	Full bool
	// Config requests the model configuration along with each record.
	Config bool
	// CardData requests the model card metadata along with each record.
	CardData bool
}

func (o *ModelListOptions) values() url.Values {
	params := url.Values{}
	if o.Filter != nil {
		o.Filter.apply(params)
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.Author != "" {
		params.Set("author", o.Author)
	}
	if o.Sort != "" {
		params.Set("sort", o.Sort)
	}
	if o.Direction == Descending {
		params.Set("direction", "-1")
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Full {
		params.Set("full", "true")
	}
	if o.Config {
		params.Set("config", "true")
	}
	if o.CardData {
		params.Set("cardData", "true")
	}
	return params
}

// ListModels returns the models matching opts, following server pagination
// until opts.Limit records are collected or pages run out. Records come
// back in server order.
func (c *Client) ListModels(ctx context.Context, opts *ModelListOptions) ([]*ModelInfo, error) {
	if opts == nil {
		opts = &ModelListOptions{}
	}

	next := c.apiURL("/api/models", opts.values())
	var models []*ModelInfo
	for next != "" {
		var page []*ModelInfo
		n, err := c.getJSON(ctx, next, &page)
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		models = append(models, page...)
		if opts.Limit > 0 && len(models) >= opts.Limit {
			models = models[:opts.Limit]
			break
		}
		next = n
	}
	return models, nil
}

// GetModelOptions selects what GetModel fetches.
type GetModelOptions struct {
	// Revision pins the record to a branch, tag or commit hash instead of
	// the default branch head.
	Revision string
}

// GetModel fetches the full record for one model repository, file listing
// included.
func (c *Client) GetModel(ctx context.Context, repoID string, opts *GetModelOptions) (*ModelInfo, error) {
	if repoID == "" {
		return nil, fmt.Errorf("get model: %w", ErrInvalidRepoID)
	}

	path := "/api/models/" + repoID
	if opts != nil && opts.Revision != "" {
		path += "/revision/" + url.PathEscape(opts.Revision)
	}

	var model ModelInfo
	if _, err := c.getJSON(ctx, c.apiURL(path, nil), &model); err != nil {
		return nil, fmt.Errorf("get model %q: %w", repoID, err)
	}
	return &model, nil
}
