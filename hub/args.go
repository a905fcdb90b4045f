package hub

import (
	"context"
	"fmt"
	"strings"
)

// SearchArgumentsOptions bounds the repository listing used to build the
// author and name tables.
type SearchArgumentsOptions struct {
	// SampleLimit caps how many repositories are listed. 0 lists them all,
	// which can be slow against the public Hub.
	SampleLimit int
}

// ModelSearchArguments returns every value the Hub accepts for each model
// search facet, plus "author" and "model_name" tables built from the
// repository ids themselves. The result feeds directly into ModelFilter:
//
//	args, _ := client.ModelSearchArguments(ctx, nil)
//	f := hub.NewModelFilter().
//		Task(args["pipeline_tag"]["TextClassification"]).
//		Library(args["library"]["PyTorch"])
func (c *Client) ModelSearchArguments(ctx context.Context, opts *SearchArgumentsOptions) (TagVocabulary, error) {
	vocab, err := c.ModelTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("model search arguments: %w", err)
	}

	limit := 0
	if opts != nil {
		limit = opts.SampleLimit
	}
	models, err := c.ListModels(ctx, &ModelListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("model search arguments: %w", err)
	}

	authors, names := TagSet{}, TagSet{}
	for _, m := range models {
		owner, name := splitRepoID(m.RepoID())
		if owner != "" {
			authors[CleanLabel(owner)] = owner
		}
		if name != "" {
			names[CleanLabel(name)] = name
		}
	}
	vocab["author"] = authors
	vocab["model_name"] = names
	return vocab, nil
}

// DatasetSearchArguments is the dataset counterpart of
// ModelSearchArguments, with "author" and "dataset_name" tables.
func (c *Client) DatasetSearchArguments(ctx context.Context, opts *SearchArgumentsOptions) (TagVocabulary, error) {
	vocab, err := c.DatasetTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset search arguments: %w", err)
	}

	limit := 0
	if opts != nil {
		limit = opts.SampleLimit
	}
	datasets, err := c.ListDatasets(ctx, &DatasetListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("dataset search arguments: %w", err)
	}

	authors, names := TagSet{}, TagSet{}
	for _, d := range datasets {
		owner, name := splitRepoID(d.ID)
		if owner != "" {
			authors[CleanLabel(owner)] = owner
		}
		if name != "" {
			names[CleanLabel(name)] = name
		}
	}
	vocab["author"] = authors
	vocab["dataset_name"] = names
	return vocab, nil
}

// splitRepoID splits "owner/name" ids. Canonical repositories have no
// owner segment and yield an empty owner.
func splitRepoID(repoID string) (owner, name string) {
	if before, after, found := strings.Cut(repoID, "/"); found {
		return before, after
	}
	return "", repoID
}
