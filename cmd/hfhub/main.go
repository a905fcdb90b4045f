// hfhub is a command-line client for searching the Hugging Face Hub:
// models, datasets, tag vocabularies, metrics and the identity behind
// a token. It talks to huggingface.co by default and to any hubmirror
// instance via --endpoint.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muellerzr/huggingface-hub/hub"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command and its subcommands. Every call
// returns a fresh instance so tests run isolated.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "hfhub",
		Short: "Search models, datasets and metrics on the Hugging Face Hub",
		Long: `hfhub searches the Hugging Face Hub from the command line.

It lists and filters models and datasets, prints the tag vocabularies
the hub indexes them under, and inspects single repositories. Point
--endpoint at a hubmirror instance to search a local mirror instead.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfig(cfgFile)
		},
	}

	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newModelCmd())
	cmd.AddCommand(newDatasetsCmd())
	cmd.AddCommand(newDatasetCmd())
	cmd.AddCommand(newTagsCmd())
	cmd.AddCommand(newMetricsCmd())
	cmd.AddCommand(newWhoamiCmd())

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hfhub.yaml)")
	cmd.PersistentFlags().String("endpoint", "", "hub API endpoint (default https://huggingface.co, or $HF_ENDPOINT)")
	cmd.PersistentFlags().String("token", "", "access token (default $HF_TOKEN, or ~/.huggingface/token)")
	cmd.PersistentFlags().String("format", formatTable, `output format ("table", "json")`)

	viper.BindPFlag("endpoint", cmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("format", cmd.PersistentFlags().Lookup("format"))

	return cmd
}

// readConfig loads an optional config file into viper. An explicitly
// named file must exist; the default search path may come up empty.
func readConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".hfhub")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// buildClient resolves endpoint and token from flags and config; the
// hub client itself falls back to the standard environment variables
// and the on-disk token.
func buildClient() *hub.Client {
	var opts []hub.Option
	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		opts = append(opts, hub.WithEndpoint(endpoint))
	}
	if token := viper.GetString("token"); token != "" {
		opts = append(opts, hub.WithToken(token))
	}
	opts = append(opts, hub.WithUserAgent("hfhub/"+version))
	return hub.NewClient(opts...)
}
