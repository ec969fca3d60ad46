package app

import (
	"context"
	"errors"

	"retail/internal/domain"
)

// CommitCoordinator persists a fully validated purchase as a single atomic
// insert. It never retries on its own: a failed attempt may have partially
// succeeded server-side, so retrying is the operator's decision.
type CommitCoordinator struct {
	purchases domain.PurchaseStore
}

// NewCommitCoordinator creates a coordinator over the given purchase store.
func NewCommitCoordinator(purchases domain.PurchaseStore) *CommitCoordinator {
	return &CommitCoordinator{purchases: purchases}
}

// Commit performs exactly one insert attempt. A uniqueness race on the
// purchase id comes back as ErrDuplicatePurchaseID so the caller can
// re-prompt for just that field; any other store failure comes back as
// ErrStoreUnavailable with no partial record left behind.
func (c *CommitCoordinator) Commit(ctx context.Context, p domain.Purchase) error {
	err := c.purchases.InsertPurchase(ctx, p)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrDuplicatePurchaseID) {
		return err
	}
	return unavailable("purchase insert", err)
}
