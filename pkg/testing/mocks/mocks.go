package mocks

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/pitstopgolf/server/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	CreateSubmissionFunc        func(ctx context.Context, sub *types.Submission) (string, error)
	UpdateSubmissionFunc        func(ctx context.Context, id string, data map[string]interface{}) error
	ListSubmissionsByStatusFunc func(ctx context.Context, status types.Status) ([]*types.Submission, error)
	ListenPendingFunc           func(ctx context.Context, handle func(*types.Submission)) error
	FindCustomerByPhoneFunc     func(ctx context.Context, phone string) (*types.Customer, error)
	CreateCustomerFunc          func(ctx context.Context, customer *types.Customer) (string, error)
	CreateCartFunc              func(ctx context.Context, cart *types.CartRecord, ownerID string) (string, error)
}

func (m *MockDatabase) CreateSubmission(ctx context.Context, sub *types.Submission) (string, error) {
	if m.CreateSubmissionFunc != nil {
		return m.CreateSubmissionFunc(ctx, sub)
	}
	return "submission-id", nil
}
func (m *MockDatabase) UpdateSubmission(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateSubmissionFunc != nil {
		return m.UpdateSubmissionFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) ListSubmissionsByStatus(ctx context.Context, status types.Status) ([]*types.Submission, error) {
	if m.ListSubmissionsByStatusFunc != nil {
		return m.ListSubmissionsByStatusFunc(ctx, status)
	}
	return nil, nil
}
func (m *MockDatabase) ListenPendingSubmissions(ctx context.Context, handle func(*types.Submission)) error {
	if m.ListenPendingFunc != nil {
		return m.ListenPendingFunc(ctx, handle)
	}
	return nil
}
func (m *MockDatabase) FindCustomerByPhone(ctx context.Context, phone string) (*types.Customer, error) {
	if m.FindCustomerByPhoneFunc != nil {
		return m.FindCustomerByPhoneFunc(ctx, phone)
	}
	return nil, nil
}
func (m *MockDatabase) CreateCustomer(ctx context.Context, customer *types.Customer) (string, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, customer)
	}
	return "customer-id", nil
}
func (m *MockDatabase) CreateCart(ctx context.Context, cart *types.CartRecord, ownerID string) (string, error) {
	if m.CreateCartFunc != nil {
		return m.CreateCartFunc(ctx, cart, ownerID)
	}
	return "cart-id", nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}
func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return nil, nil
}

// --- Mock Mailer ---
type MockMailer struct {
	SendFunc func(ctx context.Context, address, name, filename, path string) error
}

func (m *MockMailer) Send(ctx context.Context, address, name, filename, path string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, address, name, filename, path)
	}
	return nil
}

// --- Mock Messenger ---
type MockMessenger struct {
	SendFunc func(ctx context.Context, phone, name, path string) error
}

func (m *MockMessenger) Send(ctx context.Context, phone, name, path string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, phone, name, path)
	}
	return nil
}

// --- Mock Renderer ---
type MockRenderer struct {
	RenderFunc func(ctx context.Context, survey *types.SurveyData, ref string) (*types.ReportArtifact, error)
}

func (m *MockRenderer) Render(ctx context.Context, survey *types.SurveyData, ref string) (*types.ReportArtifact, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, survey, ref)
	}
	return &types.ReportArtifact{Path: "/tmp/report.pdf", Slug: "report"}, nil
}
