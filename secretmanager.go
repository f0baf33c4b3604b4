package posthog

import (
	"context"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// secretFetcher fetches one secret payload by its fully qualified
// resource name. The production implementation talks to Google Secret
// Manager; tests substitute a fake.
type secretFetcher interface {
	AccessSecret(ctx context.Context, name string) ([]byte, error)
	Close() error
}

// SecretManagerOption customizes secret-manager resolution.
type SecretManagerOption func(*secretManagerConfig)

type secretManagerConfig struct {
	fetcher secretFetcher
}

// withSecretFetcher substitutes the secret fetcher. Used by tests to
// avoid the network.
func withSecretFetcher(f secretFetcher) SecretManagerOption {
	return func(c *secretManagerConfig) {
		c.fetcher = f
	}
}

// FromGoogleSecretManager resolves APIOptions by fetching the API key
// from Google Secret Manager. It reads the SERVICE_ACCOUNT environment
// variable naming a service-account credentials file, authenticates with
// it, and accesses the latest version of the named secret in the given
// project.
//
// Returns a ConfigError of kind ConfigMissingEnv if SERVICE_ACCOUNT is
// unset, or of kind ConfigSecretFetch if authentication or the remote
// fetch fails.
func FromGoogleSecretManager(ctx context.Context, project, secret string, opts ...SecretManagerOption) (APIOptions, error) {
	var cfg secretManagerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	credentials := os.Getenv(EnvServiceAccount)
	if credentials == "" {
		return APIOptions{}, &ConfigError{Kind: ConfigMissingEnv, Var: EnvServiceAccount}
	}

	fetcher := cfg.fetcher
	if fetcher == nil {
		f, err := newGoogleSecretFetcher(ctx, credentials)
		if err != nil {
			return APIOptions{}, &ConfigError{Kind: ConfigSecretFetch, Err: err}
		}
		fetcher = f
	}
	defer fetcher.Close()

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, secret)
	payload, err := fetcher.AccessSecret(ctx, name)
	if err != nil {
		return APIOptions{}, &ConfigError{Kind: ConfigSecretFetch, Err: err}
	}

	key := strings.TrimSpace(string(payload))
	if key == "" {
		return APIOptions{}, &ConfigError{
			Kind: ConfigSecretFetch,
			Err:  fmt.Errorf("secret %s has an empty payload", name),
		}
	}

	return NewAPIOptions(DefaultEndpoint, key), nil
}

// googleSecretFetcher is the production secretFetcher backed by the
// Google Cloud Secret Manager API.
type googleSecretFetcher struct {
	client *secretmanager.Client
}

// newGoogleSecretFetcher authenticates to Secret Manager with the given
// service-account credentials file.
func newGoogleSecretFetcher(ctx context.Context, credentialsFile string) (*googleSecretFetcher, error) {
	client, err := secretmanager.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("secret manager client: %w", err)
	}
	return &googleSecretFetcher{client: client}, nil
}

// AccessSecret implements secretFetcher.
func (g *googleSecretFetcher) AccessSecret(ctx context.Context, name string) ([]byte, error) {
	resp, err := g.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, err
	}
	if resp.GetPayload() == nil {
		return nil, fmt.Errorf("secret %s has no payload", name)
	}
	return resp.GetPayload().GetData(), nil
}

// Close implements secretFetcher.
func (g *googleSecretFetcher) Close() error {
	return g.client.Close()
}

// Ensure googleSecretFetcher implements secretFetcher.
var _ secretFetcher = (*googleSecretFetcher)(nil)
