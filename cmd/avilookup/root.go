/*
Copyright © 2024 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package main implements avilookup, which resolves Avi Vantage controller
// AMIs from the AWS Marketplace. Without a subcommand it runs as the Lambda
// backing a CloudFormation custom resource; the resolve and catalog
// subcommands run the same lookup from a workstation.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cowdogmoo/avilookup/ami"
	"github.com/cowdogmoo/avilookup/config"
	"github.com/cowdogmoo/avilookup/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Context key type for storing config
type configKeyType struct{}

var (
	// configKey is the context key for storing the config
	configKey = configKeyType{}

	// Root command options
	cfgFile string
)

// flagConfigKeys maps command flags onto config keys so that a flag
// overrides the same setting from env or file.
var flagConfigKeys = map[string]string{
	"region":        "aws.region",
	"profile":       "aws.profile",
	"ordering":      "resolver.ordering",
	"product-code":  "catalog.product_code",
	"instance-type": "probe.instance_type",
}

var rootCmd = &cobra.Command{
	Use:   "avilookup",
	Short: "Resolve Avi Vantage controller AMIs from the AWS Marketplace",
	Long: `avilookup finds the Avi Vantage controller AMI matching a requested
version ("20.1.6") or major release ("Latest 20.x") and checks that the
account may launch it.

Run without a subcommand it serves CloudFormation custom resource requests
inside AWS Lambda.`,
	Version:           version,
	PersistentPreRunE: initConfig,
	RunE:              runServe,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $HOME/.config/avilookup/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json, color)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet mode - only show errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode - show debug output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// configFromContext retrieves the config from the command context.
// Returns nil if no config is stored in context.
func configFromContext(cmd *cobra.Command) *config.Config {
	if cmd.Context() == nil {
		return nil
	}
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return nil
}

// initConfig initializes configuration with proper precedence:
// CLI Flags > Environment Variables > Config File > Defaults
func initConfig(cmd *cobra.Command, args []string) error {
	// 1. Load config (handles defaults, env vars, and config file)
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromPath(cfgFile)
	} else {
		cfg, err = config.Load()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var loadErr error
	if err != nil {
		// Lambda must still answer CloudFormation, so fall back to defaults.
		loadErr = err
		cfg = config.Default()
	}

	// 2. Create a new Viper instance for flag binding
	v := viper.New()
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("aws.region", cfg.AWS.Region)
	v.SetDefault("aws.profile", cfg.AWS.Profile)
	v.SetDefault("resolver.ordering", cfg.Resolver.Ordering)
	v.SetDefault("catalog.product_code", cfg.Catalog.ProductCode)
	v.SetDefault("probe.instance_type", cfg.Probe.InstanceType)

	// 3. Bind Cobra flags to Viper (flags > env > config > defaults)
	if err := v.BindPFlag("log.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind log-level flag: %w", err)
	}
	if err := v.BindPFlag("log.format", cmd.Root().PersistentFlags().Lookup("log-format")); err != nil {
		return fmt.Errorf("failed to bind log-format flag: %w", err)
	}
	BindCommandFlagsToViper(v, cmd)

	// 4. Build the logger from the final values
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := logging.NewCustomLoggerWithOptions(v.GetString("log.level"), v.GetString("log.format"), quiet, verbose)
	logger.SetWriter(cmd.ErrOrStderr())

	if loadErr != nil {
		logger.Warn("failed to load config, using defaults: %v", loadErr)
	}

	// 5. Update config with final Viper values (for use in subcommands)
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.AWS.Region = v.GetString("aws.region")
	cfg.AWS.Profile = v.GetString("aws.profile")
	cfg.Resolver.Ordering = v.GetString("resolver.ordering")
	cfg.Catalog.ProductCode = v.GetString("catalog.product_code")
	cfg.Probe.InstanceType = v.GetString("probe.instance_type")

	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// BindFlagsToViper binds all flags from a command to a Viper instance.
// Flags listed in flagConfigKeys are bound to their config key; the rest are
// namespaced under viperKey (e.g. "resolve.output").
func BindFlagsToViper(v *viper.Viper, cmd *cobra.Command, viperKey string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagConfigKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
			if viperKey != "" {
				key = viperKey + "." + key
			}
		}

		if err := v.BindPFlag(key, f); err != nil {
			logging.FromContext(cmd.Context()).Warn("failed to bind flag %s to viper: %v", f.Name, err)
		}
	})
}

// BindCommandFlagsToViper binds flags from the current command and its parent persistent flags to Viper.
func BindCommandFlagsToViper(v *viper.Viper, cmd *cobra.Command) {
	BindFlagsToViper(v, cmd, getCommandPath(cmd))

	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			logging.FromContext(cmd.Context()).Warn("failed to bind inherited flag %s to viper: %v", f.Name, err)
		}
	})
}

// getCommandPath returns the command path for Viper key namespacing.
// For example, "avilookup resolve" returns "resolve".
func getCommandPath(cmd *cobra.Command) string {
	var parts []string
	current := cmd

	for current != nil && current.Parent() != nil {
		parts = append([]string{current.Name()}, parts...)
		current = current.Parent()
	}

	return strings.Join(parts, ".")
}

// newAWSClients is swapped out in tests.
var newAWSClients = ami.NewAWSClients

func clientConfig(cfg *config.Config) ami.ClientConfig {
	return ami.ClientConfig{
		Region:          cfg.AWS.Region,
		Profile:         cfg.AWS.Profile,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		SessionToken:    cfg.AWS.SessionToken,
	}
}

func catalogFilter(cfg *config.Config) ami.CatalogFilter {
	return ami.CatalogFilter{
		ProductCode: cfg.Catalog.ProductCode,
		States:      cfg.Catalog.States,
		Owners:      cfg.Catalog.Owners,
	}
}

func serviceOptions(cfg *config.Config) (ami.ServiceOptions, error) {
	ordering, err := ami.ParseOrdering(cfg.Resolver.Ordering)
	if err != nil {
		return ami.ServiceOptions{}, err
	}
	return ami.ServiceOptions{
		Filter:       catalogFilter(cfg),
		Ordering:     ordering,
		ProbeEnabled: cfg.Probe.Enabled,
		InstanceType: cfg.Probe.InstanceType,
	}, nil
}

// newService validates cfg, creates the AWS clients and loads the catalog.
func newService(ctx context.Context, cfg *config.Config) (*ami.Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := serviceOptions(cfg)
	if err != nil {
		return nil, err
	}

	clients, err := newAWSClients(ctx, clientConfig(cfg))
	if err != nil {
		return nil, err
	}
	logging.DebugContext(ctx, "Using AWS region %s", clients.GetRegion())

	return ami.NewService(ctx, clients.EC2, opts)
}
