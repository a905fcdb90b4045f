package hub

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TagItem is one entry of a tags-by-type payload. The id is what the API
// accepts in filters ("languages:en"); the label is the human-readable
// form shown on the website ("en").
type TagItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TagSet is the allowed-value table for one search facet. Keys are cleaned
// labels safe to use as identifiers, values are the raw ids the API
// accepts, so a discovered value can be dropped straight into a filter:
//
//	tags, _ := client.ModelTags(ctx)
//	f := hub.NewModelFilter().Library(tags["library"]["PyTorch"])
type TagSet map[string]string

// Labels returns the cleaned labels in sorted order.
func (s TagSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// String renders the sorted labels as a bullet list for interactive
// discovery.
func (s TagSet) String() string {
	var b strings.Builder
	b.WriteString("Available Attributes:\n")
	for _, label := range s.Labels() {
		b.WriteString(" * ")
		b.WriteString(label)
		b.WriteByte('\n')
	}
	return b.String()
}

// TagVocabulary groups the facet tables for one repository type, keyed by
// facet name ("library", "license", ...).
type TagVocabulary map[string]TagSet

// Facets returns the facet names in sorted order.
func (v TagVocabulary) Facets() []string {
	facets := make([]string, 0, len(v))
	for facet := range v {
		facets = append(facets, facet)
	}
	sort.Strings(facets)
	return facets
}

// String renders the sorted facet names as a bullet list.
func (v TagVocabulary) String() string {
	var b strings.Builder
	b.WriteString("Available Attributes:\n")
	for _, facet := range v.Facets() {
		b.WriteString(" * ")
		b.WriteString(facet)
		b.WriteByte('\n')
	}
	return b.String()
}

// CleanLabel turns a display label into an identifier-safe key: spaces are
// removed, "-" and "." become "_", and a leading digit gains a "_" prefix.
// "Item A" becomes "ItemA", "PyTorch 1.3" becomes "PyTorch1_3".
func CleanLabel(label string) string {
	label = strings.ReplaceAll(label, " ", "")
	label = strings.ReplaceAll(label, "-", "_")
	label = strings.ReplaceAll(label, ".", "_")
	if label != "" && label[0] >= '0' && label[0] <= '9' {
		label = "_" + label
	}
	return label
}

// Facet names exposed for each repository type. Facets the server does not
// report are left out of the vocabulary; extra facets in the payload are
// ignored.
var (
	modelTagFacets = []string{
		"library",
		"language",
		"license",
		"dataset",
		"pipeline_tag",
	}
	datasetTagFacets = []string{
		"languages",
		"multilinguality",
		"language_creators",
		"task_categories",
		"size_categories",
		"benchmark",
		"task_ids",
		"licenses",
	}
)

func newTagVocabulary(payload map[string][]TagItem, facets []string) TagVocabulary {
	vocab := TagVocabulary{}
	for _, facet := range facets {
		items, ok := payload[facet]
		if !ok {
			continue
		}
		set := TagSet{}
		for _, item := range items {
			set[CleanLabel(item.Label)] = item.ID
		}
		vocab[facet] = set
	}
	return vocab
}

// ModelTagsByType fetches the raw tags-by-type payload for models, facet
// name to items.
func (c *Client) ModelTagsByType(ctx context.Context) (map[string][]TagItem, error) {
	var payload map[string][]TagItem
	if _, err := c.getJSON(ctx, c.apiURL("/api/models-tags-by-type", nil), &payload); err != nil {
		return nil, fmt.Errorf("fetch model tags: %w", err)
	}
	return payload, nil
}

// DatasetTagsByType fetches the raw tags-by-type payload for datasets.
func (c *Client) DatasetTagsByType(ctx context.Context) (map[string][]TagItem, error) {
	var payload map[string][]TagItem
	if _, err := c.getJSON(ctx, c.apiURL("/api/datasets-tags-by-type", nil), &payload); err != nil {
		return nil, fmt.Errorf("fetch dataset tags: %w", err)
	}
	return payload, nil
}

// ModelTags fetches the allowed filter values for every model search facet
// (library, language, license, dataset, pipeline_tag), keyed by cleaned
// label.
func (c *Client) ModelTags(ctx context.Context) (TagVocabulary, error) {
	payload, err := c.ModelTagsByType(ctx)
	if err != nil {
		return nil, err
	}
	return newTagVocabulary(payload, modelTagFacets), nil
}

// DatasetTags fetches the allowed filter values for every dataset search
// facet (languages, multilinguality, language_creators, task_categories,
// size_categories, benchmark, task_ids, licenses).
func (c *Client) DatasetTags(ctx context.Context) (TagVocabulary, error) {
	payload, err := c.DatasetTagsByType(ctx)
	if err != nil {
		return nil, err
	}
	return newTagVocabulary(payload, datasetTagFacets), nil
}
