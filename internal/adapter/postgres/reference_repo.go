package postgres

import (
	"context"
	"database/sql"
)

// CustomerExists reports whether a customer row with the given id exists.
func (d *DB) CustomerExists(ctx context.Context, id int64) (bool, error) {
	return d.exists(ctx, "SELECT EXISTS (SELECT 1 FROM customer WHERE customer_id = $1)", id)
}

// StoreExists reports whether any store row with the given id exists.
func (d *DB) StoreExists(ctx context.Context, id int64) (bool, error) {
	return d.exists(ctx, "SELECT EXISTS (SELECT 1 FROM store WHERE store_id = $1)", id)
}

// StoreHasLocation reports whether the store is registered at the location.
func (d *DB) StoreHasLocation(ctx context.Context, storeID int64, location string) (bool, error) {
	return d.exists(ctx,
		"SELECT EXISTS (SELECT 1 FROM store WHERE store_id = $1 AND store_location = $2)",
		storeID, location)
}

// ProductSoldAt reports whether the product is carried in inventory at the
// specific (store, location) pair.
func (d *DB) ProductSoldAt(ctx context.Context, productID, storeID int64, location string) (bool, error) {
	return d.exists(ctx,
		"SELECT EXISTS (SELECT 1 FROM inventory WHERE product_id = $1 AND store_id = $2 AND store_location = $3)",
		productID, storeID, location)
}

// PurchaseIDTaken reports whether a purchase row with the given id exists.
func (d *DB) PurchaseIDTaken(ctx context.Context, id int64) (bool, error) {
	return d.exists(ctx, "SELECT EXISTS (SELECT 1 FROM purchase WHERE purchase_id = $1)", id)
}

// ChainNameFor returns the chain name for a store, or "" when the store is
// unknown.
func (d *DB) ChainNameFor(ctx context.Context, storeID int64) (string, error) {
	var name string
	err := d.sql.QueryRowContext(ctx,
		"SELECT chain_name FROM store WHERE store_id = $1 LIMIT 1", storeID,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (d *DB) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := d.sql.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
