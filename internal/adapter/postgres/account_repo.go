package postgres

import (
	"context"
	"database/sql"

	"retail/internal/domain"
)

// UsernameTaken reports whether an application user with the username exists.
func (d *DB) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return d.exists(ctx, "SELECT EXISTS (SELECT 1 FROM user_info WHERE username = $1)", username)
}

// Authenticate runs the store's authenticate routine and returns its role
// code: 0 unauthenticated, 1 client, 2 administrator.
func (d *DB) Authenticate(ctx context.Context, username, password string) (int, error) {
	var code int
	err := d.sql.QueryRowContext(ctx, "SELECT authenticate($1, $2)", username, password).Scan(&code)
	return code, err
}

// CreateAccount registers a new application user through sp_add_user, which
// salts and hashes the password server-side.
func (d *DB) CreateAccount(ctx context.Context, acct domain.NewAccount) error {
	empType := sql.NullString{String: acct.EmployeeType, Valid: acct.EmployeeType != ""}
	phone := sql.NullString{String: acct.PhoneNumber, Valid: acct.PhoneNumber != ""}
	_, err := d.sql.ExecContext(ctx,
		"CALL sp_add_user($1, $2, $3, $4, $5, $6, $7, $8)",
		acct.Username, acct.Password, acct.Admin,
		acct.FirstName, acct.LastName, empType, acct.StoreManager, phone,
	)
	return err
}
