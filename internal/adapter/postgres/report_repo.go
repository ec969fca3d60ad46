package postgres

import (
	"context"

	"retail/internal/domain"
)

// StorePerformance returns per-location transaction counts, revenue, and
// average foot traffic, including locations with no activity.
func (d *DB) StorePerformance(ctx context.Context) ([]domain.StorePerformanceRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		WITH purchase_summary AS (
			SELECT store_id, store_location,
				COUNT(*) AS total_transactions,
				SUM(purchased_product_price_usd) AS total_revenue
			FROM purchase
			GROUP BY store_id, store_location
		),
		popularity_summary AS (
			SELECT store_id, store_location,
				AVG(foot_traffic) AS avg_foot_traffic
			FROM popularity
			GROUP BY store_id, store_location
		)
		SELECT s.store_id, s.store_location,
			COALESCE(p.total_transactions, 0),
			COALESCE(p.total_revenue, 0),
			COALESCE(pop.avg_foot_traffic, 0)
		FROM store s
		LEFT JOIN purchase_summary p
			ON s.store_id = p.store_id AND s.store_location = p.store_location
		LEFT JOIN popularity_summary pop
			ON s.store_id = pop.store_id AND s.store_location = pop.store_location
		ORDER BY s.store_id, s.store_location`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StorePerformanceRow
	for rows.Next() {
		var r domain.StorePerformanceRow
		if err := rows.Scan(&r.StoreID, &r.StoreLocation, &r.TotalTransactions, &r.TotalRevenue, &r.AvgFootTraffic); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StoreSalesStats reads the per-store sales rollup view.
func (d *DB) StoreSalesStats(ctx context.Context) ([]domain.StoreSalesRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT store_id, total_sales, num_purchases, avg_discount, min_price, max_price
		FROM store_sales_stats
		ORDER BY store_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StoreSalesRow
	for rows.Next() {
		var r domain.StoreSalesRow
		if err := rows.Scan(&r.StoreID, &r.TotalSales, &r.NumPurchases, &r.AvgDiscount, &r.MinPrice, &r.MaxPrice); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PaymentMethodUsage counts payment method uses per store location, most
// used first within each location.
func (d *DB) PaymentMethodUsage(ctx context.Context) ([]domain.PaymentMethodRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT store_id, store_location, payment_method, COUNT(*) AS usage_count
		FROM purchase
		GROUP BY store_id, store_location, payment_method
		ORDER BY store_id, store_location, usage_count DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PaymentMethodRow
	for rows.Next() {
		var r domain.PaymentMethodRow
		if err := rows.Scan(&r.StoreID, &r.StoreLocation, &r.PaymentMethod, &r.UsageCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AgeGroupStats brackets purchases by customer age.
func (d *DB) AgeGroupStats(ctx context.Context) ([]domain.AgeGroupRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT
			CASE
				WHEN c.age BETWEEN 18 AND 25 THEN '18-25'
				WHEN c.age BETWEEN 26 AND 35 THEN '26-35'
				WHEN c.age BETWEEN 36 AND 50 THEN '36-50'
				ELSE '50+'
			END AS age_group,
			COUNT(p.purchase_id),
			AVG(p.purchased_product_price_usd)
		FROM customer c
		JOIN purchase p ON c.customer_id = p.customer_id
		GROUP BY age_group
		ORDER BY age_group`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AgeGroupRow
	for rows.Next() {
		var r domain.AgeGroupRow
		if err := rows.Scan(&r.AgeGroup, &r.TotalPurchases, &r.AvgSpent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GenderStats groups purchases by the customer's reported gender.
func (d *DB) GenderStats(ctx context.Context) ([]domain.GenderRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT c.gender, COUNT(p.purchase_id), AVG(p.purchased_product_price_usd)
		FROM customer c
		JOIN purchase p ON c.customer_id = p.customer_id
		GROUP BY c.gender
		ORDER BY c.gender`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GenderRow
	for rows.Next() {
		var r domain.GenderRow
		if err := rows.Scan(&r.Gender, &r.TotalPurchases, &r.AvgSpent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
