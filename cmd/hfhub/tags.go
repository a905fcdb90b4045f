package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muellerzr/huggingface-hub/hub"
)

// newTagsCmd prints the tag vocabularies the hub indexes repos under,
// either every facet or one facet's values.
func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags models|datasets [facet]",
		Short: "Print a tag vocabulary",
		Long: `Prints the values the hub accepts for each filterable facet, with
attribute names cleaned for programmatic use. Name a facet (for models:
library, language, license, dataset, pipeline_tag) to print just its
values.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				vocab hub.TagVocabulary
				err   error
			)
			switch args[0] {
			case "models":
				vocab, err = buildClient().ModelTags(cmd.Context())
			case "datasets":
				vocab, err = buildClient().DatasetTags(cmd.Context())
			default:
				return fmt.Errorf("unknown repo type %q (want \"models\" or \"datasets\")", args[0])
			}
			if err != nil {
				return err
			}

			w := newResultsWriter(cmd.OutOrStdout())
			if len(args) == 1 {
				return w.printVocabulary(vocab)
			}

			set, ok := vocab[args[1]]
			if !ok {
				return fmt.Errorf("unknown facet %q (have: %s)", args[1], strings.Join(vocab.Facets(), ", "))
			}
			return w.printTagSet(set)
		},
	}
	return cmd
}
