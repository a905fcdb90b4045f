package hub

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelFilter_Apply(t *testing.T) {
	f := NewModelFilter().
		Task("text-classification").
		TrainedDataset("imdb").
		Library("pytorch", "tensorflow").
		Tags("benchmark:raft").
		Language("en").
		License("apache-2.0")

	params := url.Values{}
	f.apply(params)

	assert.Equal(t, []string{
		"text-classification",
		"dataset:imdb",
		"pytorch",
		"tensorflow",
		"benchmark:raft",
		"en",
		"license:apache-2.0",
	}, params["filter"])
	assert.Empty(t, params.Get("author"))
	assert.Empty(t, params.Get("search"))
}

func TestModelFilter_AuthorAndName(t *testing.T) {
	params := url.Values{}
	NewModelFilter().Author("microsoft").ModelName("deberta").apply(params)
	assert.Equal(t, "microsoft", params.Get("author"))
	assert.Equal(t, "microsoft/deberta", params.Get("search"))

	// A name without an author searches the bare name.
	params = url.Values{}
	NewModelFilter().ModelName("bert").apply(params)
	assert.Empty(t, params.Get("author"))
	assert.Equal(t, "bert", params.Get("search"))

	// An author without a name does not produce a search string.
	params = url.Values{}
	NewModelFilter().Author("microsoft").apply(params)
	assert.Equal(t, "microsoft", params.Get("author"))
	assert.Empty(t, params.Get("search"))
}

func TestModelFilter_PrefixIdempotent(t *testing.T) {
	params := url.Values{}
	NewModelFilter().
		TrainedDataset("dataset:imdb").
		License("license:mit").
		apply(params)
	assert.Equal(t, []string{"dataset:imdb", "license:mit"}, params["filter"])
}

func TestModelFilter_SettersAppend(t *testing.T) {
	f := NewModelFilter().Language("en")
	f.Language("fr", "de")

	params := url.Values{}
	f.apply(params)
	assert.Equal(t, []string{"en", "fr", "de"}, params["filter"])
}

func TestModelListOptions_OverridesFilter(t *testing.T) {
	opts := &ModelListOptions{
		Filter: NewModelFilter().Author("google").ModelName("bert"),
		Search: "electra",
		Author: "microsoft",
	}
	params := opts.values()
	assert.Equal(t, "electra", params.Get("search"))
	assert.Equal(t, "microsoft", params.Get("author"))
}

func TestDatasetFilter_Apply(t *testing.T) {
	f := NewDatasetFilter().
		Benchmark("raft").
		LanguageCreators("crowdsourced").
		Language("en", "fr").
		Multilinguality("multilingual").
		SizeCategories("100K<n<1M").
		TaskCategories("text-classification").
		TaskIDs("natural-language-inference")

	params := url.Values{}
	f.apply(params)

	assert.Equal(t, []string{
		"benchmark:raft",
		"language_creators:crowdsourced",
		"languages:en",
		"languages:fr",
		"multilinguality:multilingual",
		"size_categories:100K<n<1M",
		"task_categories:text-classification",
		"task_ids:natural-language-inference",
	}, params["filter"])
}

func TestDatasetFilter_PrefixIdempotent(t *testing.T) {
	params := url.Values{}
	NewDatasetFilter().Benchmark("benchmark:raft").Language("languages:en").apply(params)
	assert.Equal(t, []string{"benchmark:raft", "languages:en"}, params["filter"])
}

func TestDatasetFilter_AuthorAndName(t *testing.T) {
	params := url.Values{}
	NewDatasetFilter().Author("ought").DatasetName("raft").apply(params)
	assert.Equal(t, "ought", params.Get("author"))
	assert.Equal(t, "ought/raft", params.Get("search"))
}
