package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDatasets(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasets", r.URL.Path)
		q := r.URL.Query()
		assert.ElementsMatch(t, []string{"benchmark:raft", "languages:en"}, q["filter"])
		fmt.Fprint(w, `[
			{"id": "ought/raft", "author": "ought", "downloads": 5000,
			 "tags": ["benchmark:raft", "languages:en"]}
		]`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	datasets, err := c.ListDatasets(context.Background(), &DatasetListOptions{
		Filter: NewDatasetFilter().Benchmark("raft").Language("en"),
	})
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, "ought/raft", datasets[0].ID)
	assert.Equal(t, "ought", datasets[0].Author)
}

func TestListDatasets_SearchAndSort(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "glue", q.Get("search"))
		assert.Equal(t, "downloads", q.Get("sort"))
		assert.Equal(t, "", q.Get("direction"))
		fmt.Fprint(w, `[{"id": "glue"}, {"id": "super_glue"}]`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	datasets, err := c.ListDatasets(context.Background(), &DatasetListOptions{
		Search:    "glue",
		Sort:      "downloads",
		Direction: Ascending,
	})
	require.NoError(t, err)
	assert.Len(t, datasets, 2)
}

func TestGetDataset(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasets/glue", r.URL.Path)
		json.NewEncoder(w).Encode(DatasetInfo{
			ID:          "glue",
			Description: "GLUE benchmark",
			Siblings:    []SiblingFile{{Rfilename: "dataset_infos.json"}},
		})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	dataset, err := c.GetDataset(context.Background(), "glue", nil)
	require.NoError(t, err)
	assert.Equal(t, "GLUE benchmark", dataset.Description)
	assert.Equal(t, []string{"dataset_infos.json"}, dataset.Files())
}

func TestGetDataset_EmptyID(t *testing.T) {
	isolateEnv(t)

	c := NewClient()
	_, err := c.GetDataset(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrInvalidRepoID)
}
