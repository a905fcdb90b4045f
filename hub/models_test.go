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

func TestListModels(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, []string{"text-classification", "pytorch"}, q["filter"])
		assert.Equal(t, "downloads", q.Get("sort"))
		assert.Equal(t, "-1", q.Get("direction"))
		assert.Equal(t, "2", q.Get("limit"))
		assert.Equal(t, "true", q.Get("full"))

		fmt.Fprint(w, `[
			{"id": "distilbert-base-uncased", "sha": "abc123", "downloads": 4000000, "likes": 120,
			 "pipeline_tag": "text-classification", "tags": ["pytorch", "en"],
			 "siblings": [{"rfilename": "config.json"}, {"rfilename": "pytorch_model.bin"}]},
			{"id": "microsoft/deberta-base", "downloads": 100, "siblings": null}
		]`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	models, err := c.ListModels(context.Background(), &ModelListOptions{
		Filter:    NewModelFilter().Task("text-classification").Library("pytorch"),
		Sort:      "downloads",
		Direction: Descending,
		Limit:     2,
		Full:      true,
	})
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "distilbert-base-uncased", models[0].ID)
	assert.Equal(t, "abc123", models[0].SHA)
	assert.Equal(t, int64(4000000), models[0].Downloads)
	assert.Equal(t, []string{"config.json", "pytorch_model.bin"}, models[0].Files())

	// A null siblings array must come back as an empty file listing.
	assert.Empty(t, models[1].Files())
}

func TestListModels_NilOptions(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	models, err := c.ListModels(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListModels_Pagination(t *testing.T) {
	isolateEnv(t)

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cursor") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/models?cursor=p2>; rel="next"`, srv.URL))
			fmt.Fprint(w, `[{"id": "m1"}, {"id": "m2"}]`)
		case "p2":
			fmt.Fprint(w, `[{"id": "m3"}]`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	models, err := c.ListModels(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, models, 3)
	assert.Equal(t, "m3", models[2].ID)
}

func TestListModels_LimitStopsPagination(t *testing.T) {
	isolateEnv(t)

	pages := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/models?cursor=more>; rel="next"`, srv.URL))
		fmt.Fprint(w, `[{"id": "a"}, {"id": "b"}, {"id": "c"}]`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	models, err := c.ListModels(context.Background(), &ModelListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, models, 2)
	assert.Equal(t, 1, pages)
}

func TestGetModel(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models/bert-base-cased", r.URL.Path)
		json.NewEncoder(w).Encode(ModelInfo{
			ID:          "bert-base-cased",
			SHA:         "0a6aa9128b6194f4f3c4db429b6cb4891cdb421b",
			PipelineTag: "fill-mask",
			Siblings:    []SiblingFile{{Rfilename: "vocab.txt"}},
		})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	model, err := c.GetModel(context.Background(), "bert-base-cased", nil)
	require.NoError(t, err)
	assert.Equal(t, "fill-mask", model.PipelineTag)
	assert.Equal(t, []string{"vocab.txt"}, model.Files())
}

func TestGetModel_Revision(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models/gpt2/revision/main", r.URL.Path)
		json.NewEncoder(w).Encode(ModelInfo{ID: "gpt2", SHA: "deadbeef"})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	model, err := c.GetModel(context.Background(), "gpt2", &GetModelOptions{Revision: "main"})
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", model.SHA)
}

func TestGetModel_EmptyID(t *testing.T) {
	isolateEnv(t)

	c := NewClient()
	_, err := c.GetModel(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrInvalidRepoID)
}

func TestModelInfo_RepoID(t *testing.T) {
	assert.Equal(t, "a/b", (&ModelInfo{ID: "a/b"}).RepoID())
	assert.Equal(t, "legacy/id", (&ModelInfo{ModelID: "legacy/id"}).RepoID())
	assert.Equal(t, "a/b", (&ModelInfo{ID: "a/b", ModelID: "legacy/id"}).RepoID())
}
