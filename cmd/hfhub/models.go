package main

import (
	"github.com/spf13/cobra"

	"github.com/muellerzr/huggingface-hub/hub"
)

// newModelsCmd lists and filters models. The facet flags feed a
// ModelFilter; free-text search and sorting ride alongside.
func newModelsCmd() *cobra.Command {
	var (
		search    string
		author    string
		tasks     []string
		datasets  []string
		libraries []string
		tags      []string
		languages []string
		licenses  []string
		sort      string
		desc      bool
		limit     int
		full      bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Search models on the hub",
		Long: `Searches the hub's model index. Facet flags narrow the result the same
way the filter sidebar on the website does; repeat a flag to require
several values at once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := hub.NewModelFilter().
				Task(tasks...).
				TrainedDataset(datasets...).
				Library(libraries...).
				Tags(tags...).
				Language(languages...).
				License(licenses...)

			opts := &hub.ModelListOptions{
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

			models, err := buildClient().ListModels(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return newResultsWriter(cmd.OutOrStdout()).printModels(models)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over repo names")
	cmd.Flags().StringVar(&author, "author", "", "restrict to one user or organization")
	cmd.Flags().StringSliceVar(&tasks, "task", nil, "filter by pipeline task (repeatable)")
	cmd.Flags().StringSliceVar(&datasets, "dataset", nil, "filter by training dataset (repeatable)")
	cmd.Flags().StringSliceVar(&libraries, "library", nil, "filter by library (repeatable)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "filter by arbitrary tag (repeatable)")
	cmd.Flags().StringSliceVar(&languages, "language", nil, "filter by language (repeatable)")
	cmd.Flags().StringSliceVar(&licenses, "license", nil, "filter by license (repeatable)")
	cmd.Flags().StringVar(&sort, "sort", "", `order by a record field, e.g. "downloads"`)
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum records to fetch (0 fetches every page)")
	cmd.Flags().BoolVar(&full, "full", false, "request file listings with each record")

	return cmd
}

// newModelCmd shows one model record.
func newModelCmd() *cobra.Command {
	var (
		revision string
		files    bool
	)

	cmd := &cobra.Command{
		Use:   "model <repo-id>",
		Short: "Show one model record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := buildClient().GetModel(cmd.Context(), args[0], &hub.GetModelOptions{Revision: revision})
			if err != nil {
				return err
			}
			w := newResultsWriter(cmd.OutOrStdout())
			if files {
				return w.printFiles(model.Files())
			}
			return w.printModelDetails(model)
		},
	}

	cmd.Flags().StringVar(&revision, "revision", "", "branch, tag or commit to inspect")
	cmd.Flags().BoolVar(&files, "files", false, "print the repo file listing instead of the record")

	return cmd
}
