// Package hub is a client for the Hugging Face Hub REST API, focused on
// discovering and searching model and dataset repositories.
//
// A zero-configuration client targets the public Hub:
//
//	client := hub.NewClient()
//	models, err := client.ListModels(ctx, &hub.ModelListOptions{
//		Filter: hub.NewModelFilter().Task("text-classification").Library("pytorch"),
//		Sort:   "downloads",
//		Limit:  5,
//	})
//
// Allowed facet values are discoverable at runtime through ModelTags,
// DatasetTags and the SearchArguments helpers, which map cleaned labels to
// the raw ids the API understands.
package hub
