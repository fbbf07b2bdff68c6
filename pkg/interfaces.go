package shared

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/pitstopgolf/server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	CreateSubmission(ctx context.Context, sub *types.Submission) (string, error)
	UpdateSubmission(ctx context.Context, id string, data map[string]interface{}) error
	ListSubmissionsByStatus(ctx context.Context, status types.Status) ([]*types.Submission, error)

	// ListenPendingSubmissions streams newly added pending submissions until
	// ctx is cancelled. handle is called once per added document.
	ListenPendingSubmissions(ctx context.Context, handle func(*types.Submission)) error

	// Customers / Carts
	FindCustomerByPhone(ctx context.Context, phone string) (*types.Customer, error) // nil, nil when absent
	CreateCustomer(ctx context.Context, customer *types.Customer) (string, error)
	CreateCart(ctx context.Context, cart *types.CartRecord, ownerID string) (string, error)
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Delivery Interfaces ---

// Mailer sends the rendered report to an email address. filename is the
// display name for the attachment, path the artifact on disk.
type Mailer interface {
	Send(ctx context.Context, address, name, filename, path string) error
}

// Messenger sends the rendered report over a chat channel. Implementations
// with a session precondition must fail fast with a distinguishable
// not-ready error rather than report success.
type Messenger interface {
	Send(ctx context.Context, phone, name, path string) error
}

// --- Rendering Interfaces ---

// Renderer produces the filled PDF report for one survey. ref is appended to
// the output filename for uniqueness (the submission document ID).
type Renderer interface {
	Render(ctx context.Context, survey *types.SurveyData, ref string) (*types.ReportArtifact, error)
}
