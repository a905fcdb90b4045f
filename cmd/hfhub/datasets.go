package main

import (
	"github.com/spf13/cobra"

	"github.com/muellerzr/huggingface-hub/hub"
)

// newDatasetsCmd lists and filters datasets with the dataset facets.
func newDatasetsCmd() *cobra.Command {
	var (
		search          string
		author          string
		benchmarks      []string
		creators        []string
		languages       []string
		multilinguality []string
		sizes           []string
		taskCategories  []string
		taskIDs         []string
		sort            string
		desc            bool
		limit           int
		full            bool
	)

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Search datasets on the hub",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := hub.NewDatasetFilter().
				Benchmark(benchmarks...).
				LanguageCreators(creators...).
				Language(languages...).
				Multilinguality(multilinguality...).
				SizeCategories(sizes...).
				TaskCategories(taskCategories...).
				TaskIDs(taskIDs...)

			opts := &hub.DatasetListOptions{
				Filter: filter,
				Search: search,
				Author: author,
				Sort:   sort,
				Limit:  limit,
				Full:   full,
			}
			if desc {
				opts.Direction = hub.Descending
			}

			datasets, err := buildClient().ListDatasets(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return newResultsWriter(cmd.OutOrStdout()).printDatasets(datasets)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over repo names")
	cmd.Flags().StringVar(&author, "author", "", "restrict to one user or organization")
	cmd.Flags().StringSliceVar(&benchmarks, "benchmark", nil, "filter by benchmark (repeatable)")
	cmd.Flags().StringSliceVar(&creators, "language-creators", nil, "filter by how the language data was produced (repeatable)")
	cmd.Flags().StringSliceVar(&languages, "language", nil, "filter by language (repeatable)")
	cmd.Flags().StringSliceVar(&multilinguality, "multilinguality", nil, "filter by multilinguality (repeatable)")
	cmd.Flags().StringSliceVar(&sizes, "size-categories", nil, "filter by size category (repeatable)")
	cmd.Flags().StringSliceVar(&taskCategories, "task-categories", nil, "filter by task category (repeatable)")
	cmd.Flags().StringSliceVar(&taskIDs, "task-ids", nil, "filter by task id (repeatable)")
	cmd.Flags().StringVar(&sort, "sort", "", `order by a record field, e.g. "downloads"`)
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum records to fetch (0 fetches every page)")
	cmd.Flags().BoolVar(&full, "full", false, "request file listings with each record")

	return cmd
}

// newDatasetCmd shows one dataset record.
func newDatasetCmd() *cobra.Command {
	var (
		revision string
		files    bool
	)

	cmd := &cobra.Command{
		Use:   "dataset <repo-id>",
		Short: "Show one dataset record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := buildClient().GetDataset(cmd.Context(), args[0], &hub.GetDatasetOptions{Revision: revision})
			if err != nil {
				return err
			}
			w := newResultsWriter(cmd.OutOrStdout())
			if files {
				return w.printFiles(dataset.Files())
			}
			return w.printDatasetDetails(dataset)
		},
	}

	cmd.Flags().StringVar(&revision, "revision", "", "branch, tag or commit to inspect")
	cmd.Flags().BoolVar(&files, "files", false, "print the repo file listing instead of the record")

	return cmd
}
