package database

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	storage "github.com/pitstopgolf/server/pkg/storage/firestore"
	"github.com/pitstopgolf/server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore.
// It wraps our typed storage client.
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

func (a *FirestoreAdapter) CreateSubmission(ctx context.Context, sub *types.Submission) (string, error) {
	return a.storage.Submissions().Add(ctx, sub)
}

func (a *FirestoreAdapter) UpdateSubmission(ctx context.Context, id string, data map[string]interface{}) error {
	return a.storage.Submissions().Doc(id).Update(ctx, data)
}

func (a *FirestoreAdapter) ListSubmissionsByStatus(ctx context.Context, st types.Status) ([]*types.Submission, error) {
	col := a.storage.Submissions()
	subs, ids, err := col.Query(ctx, col.Ref.Where("status", "==", string(st)))
	if err != nil {
		return nil, err
	}
	for i, sub := range subs {
		sub.ID = ids[i]
	}
	return subs, nil
}

// ListenPendingSubmissions watches the submissions collection filtered to
// pending status and invokes handle for every added document. Snapshot
// replays can re-deliver documents whose status already moved on; those are
// filtered here so the pipeline only ever sees pending items. Blocks until
// ctx is cancelled.
func (a *FirestoreAdapter) ListenPendingSubmissions(ctx context.Context, handle func(*types.Submission)) error {
	col := a.storage.Submissions()
	snaps := col.Ref.Where("status", "==", string(types.StatusPending)).Snapshots(ctx)
	defer snaps.Stop()

	for {
		snap, err := snaps.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				return nil
			}
			return err
		}
		for _, change := range snap.Changes {
			if change.Kind != firestore.DocumentAdded {
				continue
			}
			sub := col.FromFirestore(change.Doc.Data())
			sub.ID = change.Doc.Ref.ID
			if sub.Status != types.StatusPending {
				continue
			}
			handle(sub)
		}
	}
}

func (a *FirestoreAdapter) FindCustomerByPhone(ctx context.Context, phone string) (*types.Customer, error) {
	col := a.storage.Customers()
	iter := col.Ref.Where("fone", "==", phone).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	customer := col.FromFirestore(snap.Data())
	customer.ID = snap.Ref.ID
	return customer, nil
}

func (a *FirestoreAdapter) CreateCustomer(ctx context.Context, customer *types.Customer) (string, error) {
	return a.storage.Customers().Add(ctx, customer)
}

func (a *FirestoreAdapter) CreateCart(ctx context.Context, cart *types.CartRecord, ownerID string) (string, error) {
	c := *cart
	c.ID = ""
	c.Owner = ownerID
	return a.storage.Carts().Add(ctx, &c)
}
