package models

import "encoding/json"

// Provider webhook event types that drive a terminal transition.
// Any other event type is acknowledged and ignored.
const (
	WebhookEventPaymentPaid   = "payment.paid"
	WebhookEventPaymentFailed = "payment.failed"
)

// WebhookEnvelope is the provider notification body. The shape is
// provider-defined; every field is optional and extracted defensively.
type WebhookEnvelope struct {
	Data WebhookData `json:"data"`
}

// WebhookData is the data portion of a provider notification
type WebhookData struct {
	ID         string            `json:"id"`
	Attributes WebhookAttributes `json:"attributes"`
}

// WebhookAttributes carries the event type and, for event-wrapped
// notifications, the inner resource the event refers to
type WebhookAttributes struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventType returns the notification's event type, or "" when absent
func (e *WebhookEnvelope) EventType() string {
	return e.Data.Attributes.Type
}

// SubjectID returns the identifier of the resource the notification is
// about. Event-style payloads nest the resource under attributes.data;
// flat payloads carry it at data.id.
func (e *WebhookEnvelope) SubjectID() string {
	if len(e.Data.Attributes.Data) > 0 {
		var inner struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(e.Data.Attributes.Data, &inner); err == nil && inner.ID != "" {
			return inner.ID
		}
	}
	return e.Data.ID
}

// EventID returns the provider event identifier used for deduplication.
// Flat payloads have no separate event id; the subject id stands in.
func (e *WebhookEnvelope) EventID() string {
	if e.Data.ID != "" {
		return e.Data.ID
	}
	return e.SubjectID()
}
