package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muellerzr/huggingface-hub/hub"
)

// runCommand executes a fresh root command against isolated environment
// and viper state, capturing combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HF_ENDPOINT", "")
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	viper.Reset()

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"models", "model", "datasets", "dataset", "tags", "metrics", "whoami"} {
		assert.Contains(t, names, want)
	}
}

func TestModelsCmd_HubErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "req-1")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": "rate limit exceeded"}`)
	}))
	defer srv.Close()

	// main exits non-zero on any error from Execute, so the hub's own
	// message must survive all the way up.
	_, err := runCommand(t, "models", "--endpoint", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.ErrorIs(t, err, hub.ErrRateLimited)
}

func TestWhoamiCmd_NoToken(t *testing.T) {
	_, err := runCommand(t, "whoami", "--endpoint", "http://localhost:1")
	require.Error(t, err)
	assert.ErrorIs(t, err, hub.ErrUnauthorized)
}

func TestTagsCmd_FacetValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models-tags-by-type", r.URL.Path)
		fmt.Fprint(w, `{"library": [{"id": "pytorch", "label": "PyTorch"}]}`)
	}))
	defer srv.Close()

	out, err := runCommand(t, "tags", "models", "library", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "PyTorch")
	assert.Contains(t, out, "pytorch")
}

func TestTagsCmd_UnknownFacet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"library": []}`)
	}))
	defer srv.Close()

	_, err := runCommand(t, "tags", "models", "nope", "--endpoint", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown facet "nope"`)
}

func TestTagsCmd_UnknownRepoType(t *testing.T) {
	_, err := runCommand(t, "tags", "spaces")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown repo type "spaces"`)
}
