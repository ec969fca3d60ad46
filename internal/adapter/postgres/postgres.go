// Package postgres implements the domain store ports using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain store ports.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations. The connection is
// held for the session's duration; the caller closes it on every exit path.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customer (
			customer_id BIGINT PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			age INT,
			gender TEXT,
			phone_number TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS store (
			store_id BIGINT NOT NULL,
			store_location TEXT NOT NULL,
			chain_name TEXT NOT NULL,
			PRIMARY KEY (store_id, store_location)
		);`,
		`CREATE TABLE IF NOT EXISTS product (
			product_id BIGINT PRIMARY KEY,
			product_name TEXT NOT NULL,
			category TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			product_id BIGINT NOT NULL REFERENCES product(product_id),
			store_id BIGINT NOT NULL,
			store_location TEXT NOT NULL,
			PRIMARY KEY (product_id, store_id, store_location),
			FOREIGN KEY (store_id, store_location) REFERENCES store(store_id, store_location)
		);`,
		`CREATE TABLE IF NOT EXISTS purchase (
			purchase_id BIGINT PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES product(product_id),
			store_id BIGINT NOT NULL,
			customer_id BIGINT NOT NULL REFERENCES customer(customer_id),
			store_location TEXT NOT NULL,
			payment_method TEXT NOT NULL CHECK (payment_method IN ('Credit Card','Debit Card','Cash')),
			discount_percent INT NOT NULL CHECK (discount_percent BETWEEN 0 AND 100),
			txn_date DATE NOT NULL,
			purchased_product_price_usd NUMERIC(6,2) NOT NULL CHECK (purchased_product_price_usd >= 0),
			FOREIGN KEY (store_id, store_location) REFERENCES store(store_id, store_location)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_store ON purchase(store_id, store_location);`,
		`CREATE TABLE IF NOT EXISTS popularity (
			store_id BIGINT NOT NULL,
			store_location TEXT NOT NULL,
			foot_traffic INT NOT NULL,
			recorded_on DATE NOT NULL,
			FOREIGN KEY (store_id, store_location) REFERENCES store(store_id, store_location)
		);`,
		`CREATE TABLE IF NOT EXISTS user_info (
			username TEXT PRIMARY KEY,
			salt TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			employee_type TEXT,
			is_store_manager BOOLEAN,
			phone_number TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		authenticateFn,
		addUserProc,
		storeSalesView,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// authenticateFn is the single authentication round trip: it returns 0 for
// an unknown user or a bad password, 1 for a client, and 2 for an
// administrator.
const authenticateFn = `
CREATE OR REPLACE FUNCTION authenticate(uname TEXT, pw TEXT) RETURNS INT AS $$
DECLARE
	rec user_info%ROWTYPE;
BEGIN
	SELECT * INTO rec FROM user_info WHERE username = uname;
	IF NOT FOUND THEN
		RETURN 0;
	END IF;
	IF rec.password_hash <> encode(sha256(convert_to(rec.salt || pw, 'UTF8')), 'hex') THEN
		RETURN 0;
	END IF;
	IF rec.is_admin THEN
		RETURN 2;
	END IF;
	RETURN 1;
END;
$$ LANGUAGE plpgsql;`

// addUserProc salts and hashes the password server-side so it is never
// stored in the clear.
const addUserProc = `
CREATE OR REPLACE PROCEDURE sp_add_user(
	uname TEXT, pw TEXT, admin BOOLEAN,
	fname TEXT, lname TEXT,
	emp_type TEXT, store_mgr BOOLEAN, phone TEXT
) AS $$
DECLARE
	s TEXT := md5(random()::text || clock_timestamp()::text);
BEGIN
	INSERT INTO user_info
		(username, salt, password_hash, is_admin, first_name, last_name,
		 employee_type, is_store_manager, phone_number, created_at)
	VALUES
		(uname, s, encode(sha256(convert_to(s || pw, 'UTF8')), 'hex'), admin,
		 fname, lname, emp_type, store_mgr, phone, now());
END;
$$ LANGUAGE plpgsql;`

const storeSalesView = `
CREATE OR REPLACE VIEW store_sales_stats AS
SELECT store_id,
	SUM(purchased_product_price_usd) AS total_sales,
	COUNT(*) AS num_purchases,
	AVG(discount_percent) AS avg_discount,
	MIN(purchased_product_price_usd) AS min_price,
	MAX(purchased_product_price_usd) AS max_price
FROM purchase
GROUP BY store_id;`
