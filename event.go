package posthog

import "time"

// Event is one analytics event: a name, the distinct ID of the user or
// session it belongs to, a string property bag, and an optional capture
// timestamp. Events are built by the caller, consumed once by
// Client.Capture, and then discarded.
//
// Example:
//
//	event, err := posthog.NewEvent("signup", "user_42")
//	if err != nil {
//	    return err
//	}
//	event.InsertProp("plan", "pro")
//	event.SetTimestamp(time.Now().UTC())
type Event struct {
	// Name identifies the event, e.g. "user_logged_in".
	Name string

	// DistinctID correlates the event to a single end-user or session.
	DistinctID string

	// Properties is the event's key/value property bag.
	// Later insertions with a duplicate key overwrite earlier ones.
	Properties map[string]string

	// Timestamp is the explicit capture time. When nil, the collector
	// assigns ingestion time upon receipt.
	Timestamp *time.Time
}

// Property is a single key/value pair for bulk insertion.
type Property struct {
	Key   string
	Value string
}

// NewEvent constructs an event with an empty property bag and no timestamp.
// Name and distinctID must be non-empty.
func NewEvent(name, distinctID string) (*Event, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if distinctID == "" {
		return nil, &ValidationError{Field: "distinct_id", Message: "cannot be empty"}
	}
	return &Event{
		Name:       name,
		DistinctID: distinctID,
		Properties: make(map[string]string),
	}, nil
}

// InsertProp inserts or overwrites one property.
func (e *Event) InsertProp(key, value string) {
	if e.Properties == nil {
		e.Properties = make(map[string]string)
	}
	e.Properties[key] = value
}

// InsertProps inserts or overwrites properties in the given order.
// Later pairs win on key collision.
func (e *Event) InsertProps(props ...Property) {
	for _, p := range props {
		e.InsertProp(p.Key, p.Value)
	}
}

// SetTimestamp attaches an explicit capture time to the event.
func (e *Event) SetTimestamp(t time.Time) {
	e.Timestamp = &t
}

// captureRequest is the wire format of a capture call. The API key rides
// in the body, and the distinct ID nests inside the properties object.
type captureRequest struct {
	APIKey     string          `json:"api_key"`
	Event      string          `json:"event"`
	Properties eventProperties `json:"properties"`
	Timestamp  *time.Time      `json:"timestamp,omitempty"`
}

// eventProperties is the nested properties object of a capture payload.
type eventProperties struct {
	DistinctID string            `json:"distinct_id"`
	Properties map[string]string `json:"properties"`
}

// newCaptureRequest pairs an event with the resolved API key.
func newCaptureRequest(e *Event, apiKey string) *captureRequest {
	props := e.Properties
	if props == nil {
		props = make(map[string]string)
	}
	return &captureRequest{
		APIKey: apiKey,
		Event:  e.Name,
		Properties: eventProperties{
			DistinctID: e.DistinctID,
			Properties: props,
		},
		Timestamp: e.Timestamp,
	}
}
