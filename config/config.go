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

// Package config loads avilookup settings from a YAML file, AVILOOKUP_*
// environment variables and built-in defaults.
//
// Inside Lambda there is normally no config file, so every key can be set
// through the function's environment, for example:
//
//	AVILOOKUP_CATALOG_PRODUCT_CODE=a9e7i60gidrc5x9nd7z3qyjj5
//	AVILOOKUP_RESOLVER_ORDERING=lexical
//	AVILOOKUP_PROBE_INSTANCE_TYPE=m5.2xlarge
package config

import (
	"fmt"
	"strings"

	"github.com/cowdogmoo/avilookup/ami"
	"github.com/cowdogmoo/avilookup/errors"
	"github.com/spf13/viper"
)

// DefaultProductCode is the AWS Marketplace product code of the Avi Vantage
// controller AMIs.
const DefaultProductCode = "a9e7i60gidrc5x9nd7z3qyjj5"

// EnvPrefix is the prefix of every avilookup environment variable.
const EnvPrefix = "AVILOOKUP"

// Config represents the avilookup configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	AWS      AWSConfig      `mapstructure:"aws" yaml:"aws"`
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Probe    ProbeConfig    `mapstructure:"probe" yaml:"probe"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AWSConfig holds AWS credentials and region. Empty values fall through to
// the SDK's default chain, which is what runs inside Lambda.
type AWSConfig struct {
	Region          string `mapstructure:"region" yaml:"region"`
	Profile         string `mapstructure:"profile" yaml:"profile"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token" yaml:"session_token"`
}

// CatalogConfig controls the one-time DescribeImages query.
type CatalogConfig struct {
	ProductCode string   `mapstructure:"product_code" yaml:"product_code"`
	States      []string `mapstructure:"states" yaml:"states"`
	Owners      []string `mapstructure:"owners" yaml:"owners"`
}

// ProbeConfig controls the dry-run launch permission check.
type ProbeConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	InstanceType string `mapstructure:"instance_type" yaml:"instance_type"`
}

// ResolverConfig controls version selection.
type ResolverConfig struct {
	// Ordering is "semantic" (numeric per component, exact major match) or
	// "lexical" (plain string comparison and string-prefix major match, kept
	// for stacks that depend on it). Validate normalizes the aliases "semver"
	// and "string" and any casing to these two names.
	Ordering string `mapstructure:"ordering" yaml:"ordering"`
}

// Load reads the configuration from the standard search paths.
// Returns a Config with defaults if no config file exists.
func Load() (*Config, error) {
	v := newViper()

	for _, dir := range ConfigDirs() {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("config")

	// Read config file (optional - doesn't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap("read config file", "", err)
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap("expand config path", path, err)
	}

	v := newViper()
	v.SetConfigFile(expanded)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap("read config file", path, err)
	}

	return unmarshal(v)
}

// Default returns the built-in defaults, ignoring files and environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		return &Config{}
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap("unmarshal config", "", err)
	}
	return &cfg, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// AWS defaults (will use AWS SDK defaults if not set)
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")

	v.SetDefault("catalog.product_code", DefaultProductCode)
	v.SetDefault("catalog.states", []string{"available"})
	v.SetDefault("catalog.owners", []string{})

	v.SetDefault("probe.enabled", true)
	v.SetDefault("probe.instance_type", "m5.2xlarge")

	v.SetDefault("resolver.ordering", "semantic")
}

// bindEnvVars explicitly binds environment variables that do not follow the
// AVILOOKUP_ prefix convention.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("aws.region", "AVILOOKUP_AWS_REGION", "AWS_REGION", "AWS_DEFAULT_REGION")
	_ = v.BindEnv("aws.profile", "AVILOOKUP_AWS_PROFILE", "AWS_PROFILE")
	_ = v.BindEnv("aws.access_key_id", "AVILOOKUP_AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("aws.secret_access_key", "AVILOOKUP_AWS_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("aws.session_token", "AVILOOKUP_AWS_SESSION_TOKEN", "AWS_SESSION_TOKEN")
}

// Validate checks that the configuration can drive a lookup.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Catalog.ProductCode) == "" {
		problems = append(problems, "catalog.product_code must not be empty")
	}
	if len(c.Catalog.States) == 0 {
		problems = append(problems, "catalog.states must list at least one image state")
	}
	if c.Probe.Enabled && strings.TrimSpace(c.Probe.InstanceType) == "" {
		problems = append(problems, "probe.instance_type must be set when probe.enabled is true")
	}
	if ordering, err := ami.ParseOrdering(c.Resolver.Ordering); err != nil {
		problems = append(problems, fmt.Sprintf("resolver.ordering %q is not one of: semantic, lexical", c.Resolver.Ordering))
	} else {
		c.Resolver.Ordering = ordering.String()
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
