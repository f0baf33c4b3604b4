// Package posthog provides a small client for submitting analytics events
// to the PostHog ingestion API.
//
// # Quick Start
//
// Resolve credentials, build an event, and capture it:
//
//	api, err := posthog.Auto(ctx, "my-project", "posthog-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := posthog.NewWithOptions(api)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	event, err := posthog.NewEvent("user_logged_in", "user_42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	event.InsertProp("plan", "pro")
//
//	if err := client.Capture(ctx, event); err != nil {
//	    log.Printf("capture failed: %v", err)
//	}
//
// # Credential Resolution
//
// Credentials come from one of two sources. FromEnv reads the
// POSTHOG_API_KEY environment variable; FromGoogleSecretManager
// authenticates to Google Secret Manager with the service-account file
// named by SERVICE_ACCOUNT and fetches the key by name. Auto tries the
// environment first and falls back to the secret manager, so local
// environments can use a plain env var while production relies on
// centrally managed secrets.
//
// # Delivery Semantics
//
// Each Capture call is one best-effort HTTP POST. There is no retry, no
// batching, and no local queue; all failures are returned to the caller
// as typed errors (ConfigError, APIError, TransportError, EncodingError)
// and the caller decides whether to retry, log, or surface them.
//
// # Thread Safety
//
// Client is immutable after construction and safe for concurrent use;
// concurrent Capture calls are independent. An Event is not synchronized
// and should be mutated from a single goroutine before being captured.
package posthog
