package posthog

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// APIOptions is a resolved set of ingestion credentials: the project API
// key and the endpoint to deliver to. Immutable once constructed;
// typically resolved once per process and passed into NewWithOptions.
type APIOptions struct {
	APIKey   string
	Endpoint string
}

// NewAPIOptions constructs APIOptions from an explicit endpoint and key.
func NewAPIOptions(endpoint, apiKey string) APIOptions {
	return APIOptions{APIKey: apiKey, Endpoint: endpoint}
}

// envOptions is the environment surface consumed by FromEnv.
type envOptions struct {
	APIKey   string `env:"POSTHOG_API_KEY"`
	Endpoint string `env:"POSTHOG_ENDPOINT"`
}

// FromEnv resolves APIOptions from the POSTHOG_API_KEY environment
// variable, with POSTHOG_ENDPOINT as an optional endpoint override.
// Returns a ConfigError of kind ConfigMissingEnv if the key is unset or
// empty.
func FromEnv() (APIOptions, error) {
	var opts envOptions
	if err := env.Parse(&opts); err != nil {
		return APIOptions{}, &ConfigError{Kind: ConfigMissingEnv, Var: EnvAPIKey, Err: err}
	}

	if opts.APIKey == "" {
		return APIOptions{}, &ConfigError{Kind: ConfigMissingEnv, Var: EnvAPIKey}
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return NewAPIOptions(endpoint, opts.APIKey), nil
}

// fileOptions is the YAML credentials file schema consumed by FromFile.
type fileOptions struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// FromFile resolves APIOptions from a YAML credentials file:
//
//	api_key: phc_xxx
//	endpoint: https://posthog.example.com/   # optional
//
// Returns a ConfigError of kind ConfigFile if the file cannot be read or
// parsed, or contains no api_key.
func FromFile(path string) (APIOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return APIOptions{}, &ConfigError{Kind: ConfigFile, Err: err}
	}

	var opts fileOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return APIOptions{}, &ConfigError{Kind: ConfigFile, Err: err}
	}

	if opts.APIKey == "" {
		return APIOptions{}, &ConfigError{
			Kind: ConfigFile,
			Err:  fmt.Errorf("%s: api_key is missing", path),
		}
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return NewAPIOptions(endpoint, opts.APIKey), nil
}

// Auto resolves APIOptions by trying FromEnv first and falling back to
// FromGoogleSecretManager. If both fail, the secret-manager error is
// returned, since it was attempted last. No caching; each call
// re-resolves.
//
// The fallback order lets local environments use a plain env var while
// production relies on centrally managed secrets, without the caller
// branching on environment.
func Auto(ctx context.Context, project, secret string, opts ...SecretManagerOption) (APIOptions, error) {
	if api, err := FromEnv(); err == nil {
		return api, nil
	}
	return FromGoogleSecretManager(ctx, project, secret, opts...)
}
