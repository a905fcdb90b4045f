package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DatasetInfo is a dataset repository record as returned by /api/datasets.
type DatasetInfo struct {
	ID           string          `json:"id"`
	Author       string          `json:"author,omitempty"`
	SHA          string          `json:"sha,omitempty"`
	LastModified time.Time       `json:"lastModified"`
	Private      bool            `json:"private"`
	Downloads    int64           `json:"downloads"`
	Likes        int64           `json:"likes"`
	Tags         []string        `json:"tags,omitempty"`
	Description  string          `json:"description,omitempty"`
	Citation     string          `json:"citation,omitempty"`
	Siblings     []SiblingFile   `json:"siblings,omitempty"`
	CardData     json.RawMessage `json:"cardData,omitempty"`
}

// Files returns the relative paths of the repository file listing.
func (d *DatasetInfo) Files() []string {
	files := make([]string, 0, len(d.Siblings))
	for _, s := range d.Siblings {
		files = append(files, s.Rfilename)
	}
	return files
}

// DatasetListOptions narrows and shapes a ListDatasets call. The zero
// value lists everything in server order.
type DatasetListOptions struct {
	Filter    *DatasetFilter
	Search    string
	Author    string
	Sort      string
	Direction Direction
	Limit     int
	// Full requests file listings along with each record.
	Full bool
	// CardData requests the dataset card metadata along with each record.
	CardData bool
}

func (o *DatasetListOptions) values() url.Values {
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
	if o.CardData {
		params.Set("cardData", "true")
	}
	return params
}

// ListDatasets returns the datasets matching opts, following server
// pagination until opts.Limit records are collected or pages run out.
func (c *Client) ListDatasets(ctx context.Context, opts *DatasetListOptions) ([]*DatasetInfo, error) {
	if opts == nil {
		opts = &DatasetListOptions{}
	}

	next := c.apiURL("/api/datasets", opts.values())
	var datasets []*DatasetInfo
	for next != "" {
		var page []*DatasetInfo
		n, err := c.getJSON(ctx, next, &page)
		if err != nil {
			return nil, fmt.Errorf("list datasets: %w", err)
		}
		datasets = append(datasets, page...)
		if opts.Limit > 0 && len(datasets) >= opts.Limit {
			datasets = datasets[:opts.Limit]
			break
		}
		next = n
	}
	return datasets, nil
}

// GetDatasetOptions selects what GetDataset fetches.
type GetDatasetOptions struct {
	// Revision pins the record to a branch, tag or commit hash.
	Revision string
}

// GetDataset fetches the full record for one dataset repository.
func (c *Client) GetDataset(ctx context.Context, repoID string, opts *GetDatasetOptions) (*DatasetInfo, error) {
	if repoID == "" {
		return nil, fmt.Errorf("get dataset: %w", ErrInvalidRepoID)
	}

	path := "/api/datasets/" + repoID
	if opts != nil && opts.Revision != "" {
		path += "/revision/" + url.PathEscape(opts.Revision)
	}

	var dataset DatasetInfo
	if _, err := c.getJSON(ctx, c.apiURL(path, nil), &dataset); err != nil {
		return nil, fmt.Errorf("get dataset %q: %w", repoID, err)
	}
	return &dataset, nil
}
