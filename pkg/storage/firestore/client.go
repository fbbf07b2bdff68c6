package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/pitstopgolf/server/pkg"
	"github.com/pitstopgolf/server/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

func (c *Client) Submissions() *Collection[types.Submission] {
	return &Collection[types.Submission]{
		Ref:           c.fs.Collection(shared.CollectionSubmissions),
		ToFirestore:   SubmissionToFirestore,
		FromFirestore: FirestoreToSubmission,
	}
}

func (c *Client) Customers() *Collection[types.Customer] {
	return &Collection[types.Customer]{
		Ref:           c.fs.Collection(shared.CollectionCustomers),
		ToFirestore:   CustomerToFirestore,
		FromFirestore: FirestoreToCustomer,
	}
}

func (c *Client) Carts() *Collection[types.CartRecord] {
	return &Collection[types.CartRecord]{
		Ref:           c.fs.Collection(shared.CollectionCarts),
		ToFirestore:   CartToFirestore,
		FromFirestore: FirestoreToCart,
	}
}
