// Package resolver deduplicates customers by phone number and manages cart
// ownership for incoming submissions.
//
// The lookup-then-create sequence is not transactional: two near-simultaneous
// submissions for a brand-new phone number can create duplicate customer
// records. Within one listener process the sequential queue makes that
// unreachable; across writers it is an accepted limitation.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	shared "github.com/pitstopgolf/server/pkg"
	"github.com/pitstopgolf/server/pkg/types"
)

// ErrLookup marks customer query failures; ErrCreate marks customer or cart
// write failures. Both are wrapped into the returned errors.
var (
	ErrLookup = errors.New("customer lookup failed")
	ErrCreate = errors.New("record create failed")
)

// Result reports what the resolver did for one submission.
type Result struct {
	CustomerID      string
	CustomerCreated bool
	CartID          string
	CartCreated     bool
}

type Resolver struct {
	db  shared.Database
	log *slog.Logger
}

func New(db shared.Database, log *slog.Logger) *Resolver {
	return &Resolver{db: db, log: log.With("component", "resolver")}
}

// Resolve finds or creates the customer for the survey's phone number, then
// creates a cart owned by that customer unless the submission already names
// an owner (non-blank after trimming).
func (r *Resolver) Resolve(ctx context.Context, survey *types.SurveyData) (*Result, error) {
	res := &Result{}

	customer, err := r.db.FindCustomerByPhone(ctx, survey.Client.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: fone %s: %v", ErrLookup, survey.Client.Phone, err)
	}

	if customer != nil {
		res.CustomerID = customer.ID
		r.log.Debug("Customer found", "customer_id", customer.ID, "fone", survey.Client.Phone)
	} else {
		// Client-supplied identity is never trusted; the store assigns the ID.
		id, err := r.db.CreateCustomer(ctx, &types.Customer{
			Name:      survey.Client.Name,
			Phone:     survey.Client.Phone,
			Email:     survey.Client.Email,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: customer: %v", ErrCreate, err)
		}
		res.CustomerID = id
		res.CustomerCreated = true
		r.log.Info("Customer created", "customer_id", id, "fone", survey.Client.Phone)
	}

	if strings.TrimSpace(survey.Cart.Owner) != "" {
		// Cart already references an existing customer; no cart write.
		return res, nil
	}

	cartID, err := r.db.CreateCart(ctx, &types.CartRecord{
		Brand:     survey.Cart.Brand,
		Model:     survey.Cart.Model,
		Number:    survey.Cart.Number,
		CreatedAt: time.Now(),
	}, res.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: cart: %v", ErrCreate, err)
	}
	res.CartID = cartID
	res.CartCreated = true
	r.log.Info("Cart created", "cart_id", cartID, "owner", res.CustomerID)

	return res, nil
}
