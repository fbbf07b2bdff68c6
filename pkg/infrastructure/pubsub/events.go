package pubsub

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/pitstopgolf/server/pkg/types"
)

const (
	EventTypeSubmissionProcessed = "br.com.pitstopgolf.submission.processed"
	EventSourceListener          = "pitstopgolf/listener"
)

// SubmissionProcessed is the payload published after a submission reaches a
// terminal status. Downstream consumers (dashboards, reconciliation) key off
// the submission ID; the status fields are a convenience copy.
type SubmissionProcessed struct {
	SubmissionID string            `json:"submission_id"`
	Status       types.Status      `json:"status"`
	EmailStatus  types.EmailStatus `json:"email_status,omitempty"`
	WhatsStatus  types.WhatsStatus `json:"whats_status,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// NewCloudEvent creates a standardized CloudEvent v1.0
func NewCloudEvent(source, eventType string, data interface{}) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetSpecVersion("1.0")
	e.SetType(eventType)
	e.SetSource(source)

	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return e, err
	}

	return e, nil
}
