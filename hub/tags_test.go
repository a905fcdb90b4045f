package hub

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "ItemA", CleanLabel("Item A"))
	assert.Equal(t, "text_classification", CleanLabel("text-classification"))
	assert.Equal(t, "PyTorch1_3", CleanLabel("PyTorch 1.3"))
	assert.Equal(t, "_321", CleanLabel("321"))
	assert.Equal(t, "", CleanLabel(""))
}

// The payload mirrors /api/*-tags-by-type: the id is what the API accepts
// in a filter, the label is the human-readable form.
var tagPayload = map[string][]TagItem{
	"languages": {
		{ID: "itemA", Label: "Item A"},
		{ID: "itemB", Label: "Item B"},
	},
	"license": {
		{ID: "itemC", Label: "Item C"},
		{ID: "itemD", Label: "Item D"},
	},
}

func TestNewTagVocabulary(t *testing.T) {
	vocab := newTagVocabulary(tagPayload, []string{"languages", "license"})

	require.Contains(t, vocab, "languages")
	require.Contains(t, vocab, "license")
	assert.Equal(t, TagSet{"ItemA": "itemA", "ItemB": "itemB"}, vocab["languages"])
	assert.Equal(t, TagSet{"ItemC": "itemC", "ItemD": "itemD"}, vocab["license"])
}

func TestNewTagVocabulary_FacetFilter(t *testing.T) {
	vocab := newTagVocabulary(tagPayload, []string{"license"})

	assert.Contains(t, vocab, "license")
	assert.NotContains(t, vocab, "languages")
	assert.Equal(t, TagSet{"ItemC": "itemC", "ItemD": "itemD"}, vocab["license"])
}

func TestNewTagVocabulary_MissingFacetOmitted(t *testing.T) {
	vocab := newTagVocabulary(tagPayload, []string{"license", "pipeline_tag"})

	assert.Contains(t, vocab, "license")
	assert.NotContains(t, vocab, "pipeline_tag")
}

func TestTagSet_Labels(t *testing.T) {
	set := TagSet{"ItemB": "itemB", "ItemA": "itemA"}
	assert.Equal(t, []string{"ItemA", "ItemB"}, set.Labels())
}

func TestTagSet_String(t *testing.T) {
	set := TagSet{"itemB": "b", "itemA": "a"}
	assert.Equal(t, "Available Attributes:\n * itemA\n * itemB\n", set.String())
}

func TestTagVocabulary_String(t *testing.T) {
	vocab := TagVocabulary{
		"license":   TagSet{},
		"languages": TagSet{},
	}
	assert.Equal(t, "Available Attributes:\n * languages\n * license\n", vocab.String())
	assert.Equal(t, []string{"languages", "license"}, vocab.Facets())
}

func TestModelTags(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models-tags-by-type", r.URL.Path)
		fmt.Fprint(w, `{
			"library": [{"id": "pytorch", "label": "PyTorch"}],
			"pipeline_tag": [{"id": "text-classification", "label": "Text Classification"}],
			"license": [{"id": "apache-2.0", "label": "apache-2.0"}],
			"unknown_facet": [{"id": "x", "label": "X"}]
		}`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	vocab, err := c.ModelTags(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "pytorch", vocab["library"]["PyTorch"])
	assert.Equal(t, "text-classification", vocab["pipeline_tag"]["TextClassification"])
	assert.Equal(t, "apache-2.0", vocab["license"]["apache_2_0"])

	// Facets outside the model allow-list never surface.
	assert.NotContains(t, vocab, "unknown_facet")
	// Facets absent from the payload are omitted rather than empty.
	assert.NotContains(t, vocab, "dataset")
}

func TestDatasetTags(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasets-tags-by-type", r.URL.Path)
		fmt.Fprint(w, `{
			"languages": [{"id": "languages:en", "label": "en"}],
			"benchmark": [{"id": "benchmark:raft", "label": "RAFT"}],
			"size_categories": [{"id": "size_categories:100K<n<1M", "label": "100K<n<1M"}]
		}`)
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL))
	vocab, err := c.DatasetTags(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "languages:en", vocab["languages"]["en"])
	assert.Equal(t, "benchmark:raft", vocab["benchmark"]["RAFT"])
	assert.Equal(t, "size_categories:100K<n<1M", vocab["size_categories"]["_100K<n<1M"])
}
