package app

import (
	"context"
	"fmt"

	"retail/internal/domain"
)

// Resolver answers referential questions against persisted reference data.
// Every call is one round trip through the store port; port failures surface
// as ErrStoreUnavailable and are never treated as "not found".
type Resolver struct {
	store domain.ReferenceStore
}

// NewResolver creates a Resolver backed by the given reference store.
func NewResolver(store domain.ReferenceStore) *Resolver {
	return &Resolver{store: store}
}

// CustomerExists reports whether a customer row with the given id exists.
func (r *Resolver) CustomerExists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.store.CustomerExists(ctx, id)
	if err != nil {
		return false, unavailable("customer lookup", err)
	}
	return ok, nil
}

// StoreExists reports whether a store row with the given id exists.
func (r *Resolver) StoreExists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.store.StoreExists(ctx, id)
	if err != nil {
		return false, unavailable("store lookup", err)
	}
	return ok, nil
}

// StoreHasLocation reports whether the store is registered at the given
// location.
func (r *Resolver) StoreHasLocation(ctx context.Context, storeID int64, location string) (bool, error) {
	ok, err := r.store.StoreHasLocation(ctx, storeID, location)
	if err != nil {
		return false, unavailable("store location lookup", err)
	}
	return ok, nil
}

// ProductSoldAt reports whether the product is carried at the specific
// (store, location) pair.
func (r *Resolver) ProductSoldAt(ctx context.Context, productID, storeID int64, location string) (bool, error) {
	ok, err := r.store.ProductSoldAt(ctx, productID, storeID, location)
	if err != nil {
		return false, unavailable("inventory lookup", err)
	}
	return ok, nil
}

// PurchaseIDTaken reports whether a purchase with the given id already
// exists.
func (r *Resolver) PurchaseIDTaken(ctx context.Context, id int64) (bool, error) {
	ok, err := r.store.PurchaseIDTaken(ctx, id)
	if err != nil {
		return false, unavailable("purchase lookup", err)
	}
	return ok, nil
}

// ChainNameFor returns the chain name for a store, or "" when unknown.
func (r *Resolver) ChainNameFor(ctx context.Context, storeID int64) (string, error) {
	name, err := r.store.ChainNameFor(ctx, storeID)
	if err != nil {
		return "", unavailable("chain lookup", err)
	}
	return name, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
