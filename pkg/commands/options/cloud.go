package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chobits1012/japantriphelper/pkg/cloud"
)

// CloudOptions identifies the remote document store. Flags override the
// cloud.* keys from the config file.
type CloudOptions struct {
	Endpoint string
	APIKey   string
	Project  string
}

// AddCloudArgs wires the remote store flags on the provided command.
func AddCloudArgs(cmd *cobra.Command, o *CloudOptions) {
	cmd.Flags().StringVar(&o.Endpoint, "endpoint", "", "Remote store endpoint.")
	cmd.Flags().StringVar(&o.APIKey, "api-key", "", "Remote store API key.")
	cmd.Flags().StringVar(&o.Project, "project", "", "Remote store project.")
}

// Config merges flags over the config file values.
func (o *CloudOptions) Config() cloud.Config {
	cfg := cloud.Config{
		Endpoint: viper.GetString("cloud.endpoint"),
		APIKey:   viper.GetString("cloud.apikey"),
		Project:  viper.GetString("cloud.project"),
	}
	if o.Endpoint != "" {
		cfg.Endpoint = o.Endpoint
	}
	if o.APIKey != "" {
		cfg.APIKey = o.APIKey
	}
	if o.Project != "" {
		cfg.Project = o.Project
	}
	return cfg
}
