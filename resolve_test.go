package posthog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeSecretFetcher is a secretFetcher test double.
type fakeSecretFetcher struct {
	secrets map[string][]byte
	err     error
	closed  bool
}

func (f *fakeSecretFetcher) AccessSecret(ctx context.Context, name string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.secrets[name]
	if !ok {
		return nil, errors.New("secret not found")
	}
	return data, nil
}

func (f *fakeSecretFetcher) Close() error {
	f.closed = true
	return nil
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "phc-env-key")
	t.Setenv(EnvEndpoint, "")

	api, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if api.APIKey != "phc-env-key" {
		t.Errorf("APIKey = %v, want phc-env-key", api.APIKey)
	}
	if api.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %v, want %v", api.Endpoint, DefaultEndpoint)
	}
}

func TestFromEnvEndpointOverride(t *testing.T) {
	t.Setenv(EnvAPIKey, "phc-env-key")
	t.Setenv(EnvEndpoint, "https://posthog.example.com/")

	api, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if api.Endpoint != "https://posthog.example.com/" {
		t.Errorf("Endpoint = %v, want override", api.Endpoint)
	}
}

func TestFromEnvMissing(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := FromEnv()
	cfgErr, ok := AsConfigError(err)
	if !ok {
		t.Fatalf("FromEnv() error = %v, want *ConfigError", err)
	}
	if cfgErr.Kind != ConfigMissingEnv {
		t.Errorf("Kind = %v, want %v", cfgErr.Kind, ConfigMissingEnv)
	}
	if cfgErr.Var != EnvAPIKey {
		t.Errorf("Var = %v, want %v", cfgErr.Var, EnvAPIKey)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posthog.yaml")
	content := "api_key: phc-file-key\nendpoint: https://posthog.example.com/\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	api, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if api.APIKey != "phc-file-key" {
		t.Errorf("APIKey = %v, want phc-file-key", api.APIKey)
	}
	if api.Endpoint != "https://posthog.example.com/" {
		t.Errorf("Endpoint = %v, want https://posthog.example.com/", api.Endpoint)
	}
}

func TestFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	noKey := filepath.Join(dir, "nokey.yaml")
	if err := os.WriteFile(noKey, []byte("endpoint: https://x.example.com/\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("api_key: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml")},
		{"missing api_key", noKey},
		{"invalid yaml", badYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromFile(tt.path)
			cfgErr, ok := AsConfigError(err)
			if !ok {
				t.Fatalf("FromFile() error = %v, want *ConfigError", err)
			}
			if cfgErr.Kind != ConfigFile {
				t.Errorf("Kind = %v, want %v", cfgErr.Kind, ConfigFile)
			}
		})
	}
}

func TestFromGoogleSecretManager(t *testing.T) {
	t.Setenv(EnvServiceAccount, "/etc/creds/service-account.json")

	fetcher := &fakeSecretFetcher{
		secrets: map[string][]byte{
			"projects/my-project/secrets/posthog-api-key/versions/latest": []byte("phc-secret-key\n"),
		},
	}

	api, err := FromGoogleSecretManager(context.Background(), "my-project", "posthog-api-key",
		withSecretFetcher(fetcher))
	if err != nil {
		t.Fatalf("FromGoogleSecretManager failed: %v", err)
	}
	if api.APIKey != "phc-secret-key" {
		t.Errorf("APIKey = %v, want phc-secret-key (trimmed)", api.APIKey)
	}
	if api.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %v, want %v", api.Endpoint, DefaultEndpoint)
	}
	if !fetcher.closed {
		t.Error("fetcher should be closed after resolution")
	}
}

func TestFromGoogleSecretManagerMissingServiceAccount(t *testing.T) {
	t.Setenv(EnvServiceAccount, "")

	_, err := FromGoogleSecretManager(context.Background(), "my-project", "posthog-api-key")
	cfgErr, ok := AsConfigError(err)
	if !ok {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if cfgErr.Kind != ConfigMissingEnv {
		t.Errorf("Kind = %v, want %v", cfgErr.Kind, ConfigMissingEnv)
	}
	if cfgErr.Var != EnvServiceAccount {
		t.Errorf("Var = %v, want %v", cfgErr.Var, EnvServiceAccount)
	}
}

func TestFromGoogleSecretManagerFetchFailure(t *testing.T) {
	t.Setenv(EnvServiceAccount, "/etc/creds/service-account.json")

	tests := []struct {
		name    string
		fetcher *fakeSecretFetcher
	}{
		{
			name:    "remote error",
			fetcher: &fakeSecretFetcher{err: errors.New("permission denied")},
		},
		{
			name:    "unknown secret",
			fetcher: &fakeSecretFetcher{secrets: map[string][]byte{}},
		},
		{
			name: "empty payload",
			fetcher: &fakeSecretFetcher{
				secrets: map[string][]byte{
					"projects/my-project/secrets/posthog-api-key/versions/latest": []byte("  \n"),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromGoogleSecretManager(context.Background(), "my-project", "posthog-api-key",
				withSecretFetcher(tt.fetcher))
			cfgErr, ok := AsConfigError(err)
			if !ok {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if cfgErr.Kind != ConfigSecretFetch {
				t.Errorf("Kind = %v, want %v", cfgErr.Kind, ConfigSecretFetch)
			}
		})
	}
}

func TestAutoPrefersEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "phc-env-key")
	t.Setenv(EnvServiceAccount, "/etc/creds/service-account.json")

	// The fetcher would succeed, but env must win without being consulted.
	fetcher := &fakeSecretFetcher{
		secrets: map[string][]byte{
			"projects/my-project/secrets/posthog-api-key/versions/latest": []byte("phc-secret-key"),
		},
	}

	api, err := Auto(context.Background(), "my-project", "posthog-api-key",
		withSecretFetcher(fetcher))
	if err != nil {
		t.Fatalf("Auto failed: %v", err)
	}
	if api.APIKey != "phc-env-key" {
		t.Errorf("APIKey = %v, want env-sourced phc-env-key", api.APIKey)
	}
	if fetcher.closed {
		t.Error("secret manager should not be consulted when env resolution succeeds")
	}
}

func TestAutoFallsBackToSecretManager(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvServiceAccount, "/etc/creds/service-account.json")

	fetcher := &fakeSecretFetcher{
		secrets: map[string][]byte{
			"projects/my-project/secrets/posthog-api-key/versions/latest": []byte("phc-secret-key"),
		},
	}

	api, err := Auto(context.Background(), "my-project", "posthog-api-key",
		withSecretFetcher(fetcher))
	if err != nil {
		t.Fatalf("Auto failed: %v", err)
	}
	if api.APIKey != "phc-secret-key" {
		t.Errorf("APIKey = %v, want phc-secret-key", api.APIKey)
	}
}

func TestAutoSurfacesSecretManagerError(t *testing.T) {
	// Neither source is configured; the secret-manager failure is the one
	// reported, since it was attempted last.
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvServiceAccount, "")

	_, err := Auto(context.Background(), "my-project", "posthog-api-key")
	cfgErr, ok := AsConfigError(err)
	if !ok {
		t.Fatalf("Auto() error = %v, want *ConfigError", err)
	}
	if cfgErr.Var != EnvServiceAccount {
		t.Errorf("Var = %v, want %v (secret-manager error takes precedence)", cfgErr.Var, EnvServiceAccount)
	}
}
