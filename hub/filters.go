package hub

import (
	"net/url"
	"strings"
)

// ModelFilter narrows a model listing to repositories matching every
// selected facet value. Setters append and return the receiver, so filters
// read as one chain:
//
//	f := hub.NewModelFilter().
//		Task("text-classification").
//		Library("pytorch").
//		License("apache-2.0")
//
// Facet values come from the tag vocabularies (see ModelTags and
// ModelSearchArguments) or are passed as plain strings.
type ModelFilter struct {
	author          string
	modelName       string
	tasks           []string
	trainedDatasets []string
	libraries       []string
	tags            []string
	languages       []string
	licenses        []string
}

// NewModelFilter returns an empty model filter.
func NewModelFilter() *ModelFilter { return &ModelFilter{} }

// Author restricts results to repositories owned by one user or org.
func (f *ModelFilter) Author(author string) *ModelFilter {
	f.author = author
	return f
}

// ModelName searches repository names. Combined with Author it matches
// "author/name".
func (f *ModelFilter) ModelName(name string) *ModelFilter {
	f.modelName = name
	return f
}

// Task selects pipeline tasks, e.g. "text-classification".
func (f *ModelFilter) Task(tasks ...string) *ModelFilter {
	f.tasks = append(f.tasks, tasks...)
	return f
}

// TrainedDataset selects models trained on the given datasets.
func (f *ModelFilter) TrainedDataset(datasets ...string) *ModelFilter {
	f.trainedDatasets = append(f.trainedDatasets, datasets...)
	return f
}

// Library selects the frameworks a model must support, e.g. "pytorch".
func (f *ModelFilter) Library(libraries ...string) *ModelFilter {
	f.libraries = append(f.libraries, libraries...)
	return f
}

// Tags selects raw repository tags verbatim.
func (f *ModelFilter) Tags(tags ...string) *ModelFilter {
	f.tags = append(f.tags, tags...)
	return f
}

// Language selects model languages, e.g. "en".
func (f *ModelFilter) Language(languages ...string) *ModelFilter {
	f.languages = append(f.languages, languages...)
	return f
}

// License selects model licenses, e.g. "apache-2.0".
func (f *ModelFilter) License(licenses ...string) *ModelFilter {
	f.licenses = append(f.licenses, licenses...)
	return f
}

// apply writes the filter into query parameters. Task, dataset, library,
// tag, language and license values all land on the repeated "filter"
// parameter; datasets and licenses carry their facet prefix. The author
// maps to "author" and the model name to "search".
func (f *ModelFilter) apply(params url.Values) {
	for _, t := range f.tasks {
		params.Add("filter", t)
	}
	for _, d := range f.trainedDatasets {
		params.Add("filter", withFacetPrefix(d, "dataset:"))
	}
	for _, l := range f.libraries {
		params.Add("filter", l)
	}
	for _, t := range f.tags {
		params.Add("filter", t)
	}
	for _, l := range f.languages {
		params.Add("filter", l)
	}
	for _, l := range f.licenses {
		params.Add("filter", withFacetPrefix(l, "license:"))
	}
	if f.author != "" {
		params.Set("author", f.author)
	}
	if search := f.searchString(); search != "" {
		params.Set("search", search)
	}
}

func (f *ModelFilter) searchString() string {
	if f.modelName == "" {
		return ""
	}
	if f.author != "" {
		return f.author + "/" + f.modelName
	}
	return f.modelName
}

// DatasetFilter narrows a dataset listing. Every facet value is sent as
// "facet:value" on the repeated "filter" parameter; values that already
// carry their prefix pass through untouched.
type DatasetFilter struct {
	author           string
	datasetName      string
	benchmarks       []string
	languageCreators []string
	languages        []string
	multilinguality  []string
	sizeCategories   []string
	taskCategories   []string
	taskIDs          []string
}

// NewDatasetFilter returns an empty dataset filter.
func NewDatasetFilter() *DatasetFilter { return &DatasetFilter{} }

// Author restricts results to repositories owned by one user or org.
func (f *DatasetFilter) Author(author string) *DatasetFilter {
	f.author = author
	return f
}

// DatasetName searches repository names. Combined with Author it matches
// "author/name".
func (f *DatasetFilter) DatasetName(name string) *DatasetFilter {
	f.datasetName = name
	return f
}

// Benchmark selects benchmark collections, e.g. "raft".
func (f *DatasetFilter) Benchmark(benchmarks ...string) *DatasetFilter {
	f.benchmarks = append(f.benchmarks, benchmarks...)
	return f
}

// LanguageCreators selects how the language data was produced, e.g.
// "crowdsourced".
func (f *DatasetFilter) LanguageCreators(creators ...string) *DatasetFilter {
	f.languageCreators = append(f.languageCreators, creators...)
	return f
}

// Language selects dataset languages, e.g. "en".
func (f *DatasetFilter) Language(languages ...string) *DatasetFilter {
	f.languages = append(f.languages, languages...)
	return f
}

// Multilinguality selects values such as "multilingual".
func (f *DatasetFilter) Multilinguality(values ...string) *DatasetFilter {
	f.multilinguality = append(f.multilinguality, values...)
	return f
}

// SizeCategories selects dataset size buckets, e.g. "100K<n<1M".
func (f *DatasetFilter) SizeCategories(categories ...string) *DatasetFilter {
	f.sizeCategories = append(f.sizeCategories, categories...)
	return f
}

// TaskCategories selects coarse task groupings, e.g. "text-classification".
func (f *DatasetFilter) TaskCategories(categories ...string) *DatasetFilter {
	f.taskCategories = append(f.taskCategories, categories...)
	return f
}

// TaskIDs selects fine-grained task ids, e.g. "natural-language-inference".
func (f *DatasetFilter) TaskIDs(ids ...string) *DatasetFilter {
	f.taskIDs = append(f.taskIDs, ids...)
	return f
}

func (f *DatasetFilter) apply(params url.Values) {
	facets := []struct {
		prefix string
		values []string
	}{
		{"benchmark:", f.benchmarks},
		{"language_creators:", f.languageCreators},
		{"languages:", f.languages},
		{"multilinguality:", f.multilinguality},
		{"size_categories:", f.sizeCategories},
		{"task_categories:", f.taskCategories},
		{"task_ids:", f.taskIDs},
	}
	for _, facet := range facets {
		for _, v := range facet.values {
			params.Add("filter", withFacetPrefix(v, facet.prefix))
		}
	}
	if f.author != "" {
		params.Set("author", f.author)
	}
	if search := f.searchString(); search != "" {
		params.Set("search", search)
	}
}

func (f *DatasetFilter) searchString() string {
	if f.datasetName == "" {
		return ""
	}
	if f.author != "" {
		return f.author + "/" + f.datasetName
	}
	return f.datasetName
}

// withFacetPrefix prefixes value unless it already mentions the facet, so
// passing a fully qualified id like "dataset:imdb" never double-prefixes.
func withFacetPrefix(value, prefix string) string {
	if strings.Contains(value, prefix) {
		return value
	}
	return prefix + value
}
