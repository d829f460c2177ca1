// Package store persists confirmed subscriptions, partitioned per owner.
// Every call takes an explicit owner ID; there is no implicit current
// user.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/model"
)

// ErrNotFound is returned when a subscription does not exist for the
// given owner.
var ErrNotFound = errors.New("subscription not found")

// UpdatePatch holds a partial update; nil fields keep their current value.
type UpdatePatch struct {
	Merchant     *string
	Amount       *decimal.Decimal
	Period       *model.Period
	NextBillDate *string
	Notes        *string
}

// Store is the subscription persistence boundary.
type Store interface {
	List(ctx context.Context, ownerID string) ([]model.Subscription, error)
	Create(ctx context.Context, ownerID string, input model.SubscriptionInput) (model.Subscription, error)
	Get(ctx context.Context, ownerID, id string) (model.Subscription, error)
	Update(ctx context.Context, ownerID, id string, patch UpdatePatch) (model.Subscription, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetStatus(ctx context.Context, ownerID, id string, status model.Status) (model.Subscription, error)
	Close() error
}
