package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"retail/internal/domain"
)

const uniqueViolation = "23505"

// InsertPurchase performs a single insert attempt. A uniqueness conflict on
// purchase_id maps to domain.ErrDuplicatePurchaseID.
func (d *DB) InsertPurchase(ctx context.Context, p domain.Purchase) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO purchase
			(purchase_id, product_id, store_id, customer_id, store_location,
			 payment_method, discount_percent, txn_date, purchased_product_price_usd)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.PurchaseID, p.ProductID, p.StoreID, p.CustomerID, p.StoreLocation,
		p.PaymentMethod, p.DiscountPercent, p.TransactionDate, p.PriceUSD,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicatePurchaseID
	}
	return err
}

// PurchaseByID returns the purchase with the given id, or nil when absent.
func (d *DB) PurchaseByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	err := d.sql.QueryRowContext(ctx,
		`SELECT purchase_id, product_id, store_id, customer_id, store_location,
			payment_method, discount_percent, txn_date, purchased_product_price_usd
		FROM purchase WHERE purchase_id = $1`, id,
	).Scan(&p.PurchaseID, &p.ProductID, &p.StoreID, &p.CustomerID, &p.StoreLocation,
		&p.PaymentMethod, &p.DiscountPercent, &p.TransactionDate, &p.PriceUSD)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// NextPurchaseID returns one above the highest stored purchase id, or 1 when
// the table is empty.
func (d *DB) NextPurchaseID(ctx context.Context) (int64, error) {
	var next int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(purchase_id), 0) + 1 FROM purchase").Scan(&next)
	return next, err
}

// MaxCustomerID returns the highest registered customer id, or 0 when there
// are none.
func (d *DB) MaxCustomerID(ctx context.Context) (int64, error) {
	var max int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(customer_id), 0) FROM customer").Scan(&max)
	return max, err
}

// SaleableCombos lists every (product, store, location) carried in inventory.
func (d *DB) SaleableCombos(ctx context.Context) ([]domain.SaleableCombo, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT product_id, store_id, store_location FROM inventory ORDER BY store_id, store_location, product_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var combos []domain.SaleableCombo
	for rows.Next() {
		var c domain.SaleableCombo
		if err := rows.Scan(&c.ProductID, &c.StoreID, &c.StoreLocation); err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}
