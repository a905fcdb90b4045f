package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muellerzr/huggingface-hub/hub"
)

func TestModelsCmd_FlagToFilterWiring(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[{"id": "google/bert", "downloads": 10}]`)
	}))
	defer srv.Close()

	out, err := runCommand(t, "models",
		"--endpoint", srv.URL,
		"--task", "text-classification",
		"--library", "pytorch",
		"--license", "mit",
		"--dataset", "imdb",
		"--author", "google",
		"--search", "bert",
		"--sort", "downloads",
		"--desc",
		"--limit", "2",
	)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"text-classification", "dataset:imdb", "pytorch", "license:mit"},
		gotQuery["filter"],
	)
	assert.Equal(t, "google", gotQuery.Get("author"))
	assert.Equal(t, "bert", gotQuery.Get("search"))
	assert.Equal(t, "downloads", gotQuery.Get("sort"))
	assert.Equal(t, "-1", gotQuery.Get("direction"))
	assert.Equal(t, "2", gotQuery.Get("limit"))
	assert.Contains(t, out, "google/bert")
}

func TestModelsCmd_JSONFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "gpt2", "downloads": 100}, {"id": "bert-base-cased", "downloads": 50}]`)
	}))
	defer srv.Close()

	out, err := runCommand(t, "models", "--endpoint", srv.URL, "--format", "json")
	require.NoError(t, err)

	var models []*hub.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 2)
	assert.Equal(t, "gpt2", models[0].ID)
	assert.Equal(t, int64(100), models[0].Downloads)
}

func TestModelCmd_Files(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models/gpt2", r.URL.Path)
		fmt.Fprint(w, `{"id": "gpt2", "siblings": [{"rfilename": "config.json"}, {"rfilename": "model.bin"}]}`)
	}))
	defer srv.Close()

	out, err := runCommand(t, "model", "gpt2", "--files", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "config.json\nmodel.bin\n", out)
}
