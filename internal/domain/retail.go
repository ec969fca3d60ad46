// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Role is the capability class assigned to an authenticated session.
type Role int

// Role values match the codes returned by the store's authenticate routine.
const (
	RoleNone Role = iota
	RoleClient
	RoleAdministrator
)

// RoleFromCode maps an authenticate role code to a Role. Unknown codes map
// to RoleNone.
func RoleFromCode(code int) Role {
	switch code {
	case 1:
		return RoleClient
	case 2:
		return RoleAdministrator
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleAdministrator:
		return "administrator"
	default:
		return "unauthenticated"
	}
}

// Credential is a username/password pair presented at login or signup.
// It is never persisted by the application.
type Credential struct {
	Username string
	Password string
}

// Session is the result of a successful login. The role is fixed for the
// session's lifetime; re-authentication produces a new Session.
type Session struct {
	Username string
	Role     Role
}

// Purchase is a single retail transaction record. A fully populated Purchase
// only ever comes out of the entry form after every field has passed both
// syntactic and referential validation.
type Purchase struct {
	PurchaseID      int64
	CustomerID      int64
	StoreID         int64
	StoreLocation   string
	ProductID       int64
	PriceUSD        float64
	DiscountPercent int
	PaymentMethod   string
	TransactionDate time.Time
}

// PaymentMethods is the fixed set of accepted payment methods. Matching is
// case-sensitive.
var PaymentMethods = []string{"Credit Card", "Debit Card", "Cash"}

// EmployeeTypes is the fixed set of identities an administrator account can
// register under.
var EmployeeTypes = []string{"researcher", "engineer", "maintenance"}

// NewAccount holds the fields collected at account creation. Administrator
// accounts carry an employee type; client accounts carry the store-manager
// flag and a phone number.
type NewAccount struct {
	Username     string
	Password     string
	Admin        bool
	FirstName    string
	LastName     string
	EmployeeType string
	StoreManager bool
	PhoneNumber  string
}

// SaleableCombo is a (product, store, location) triple for which the store
// carries inventory, i.e. a combination the entry form will accept.
type SaleableCombo struct {
	ProductID     int64
	StoreID       int64
	StoreLocation string
}

// ReferenceStore is the port for existence checks against persisted
// reference data. Each call is a single round trip; results are never cached
// because reference data may change between calls.
type ReferenceStore interface {
	CustomerExists(ctx context.Context, id int64) (bool, error)
	StoreExists(ctx context.Context, id int64) (bool, error)
	StoreHasLocation(ctx context.Context, storeID int64, location string) (bool, error)
	ProductSoldAt(ctx context.Context, productID, storeID int64, location string) (bool, error)
	PurchaseIDTaken(ctx context.Context, id int64) (bool, error)
	// ChainNameFor returns the chain name for a store, or "" when the store
	// is unknown.
	ChainNameFor(ctx context.Context, storeID int64) (string, error)
}

// PurchaseStore is the port for writing and reading purchase records.
type PurchaseStore interface {
	// InsertPurchase performs a single insert attempt. A uniqueness conflict
	// on the purchase id is reported as ErrDuplicatePurchaseID.
	InsertPurchase(ctx context.Context, p Purchase) error
	// PurchaseByID returns the purchase with the given id, or nil when absent.
	PurchaseByID(ctx context.Context, id int64) (*Purchase, error)
	// NextPurchaseID returns the smallest id above every stored purchase.
	NextPurchaseID(ctx context.Context) (int64, error)
	// MaxCustomerID returns the highest registered customer id.
	MaxCustomerID(ctx context.Context) (int64, error)
	// SaleableCombos lists every (product, store, location) carried in
	// inventory.
	SaleableCombos(ctx context.Context) ([]SaleableCombo, error)
}

// AccountStore is the port for application-user accounts. Authentication is
// a single round trip to the store's authenticate routine, which returns a
// role code: 0 unauthenticated, 1 client, 2 administrator.
type AccountStore interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (int, error)
	CreateAccount(ctx context.Context, acct NewAccount) error
}

// StorePerformanceRow summarizes one store location's activity.
type StorePerformanceRow struct {
	StoreID           int64
	StoreLocation     string
	TotalTransactions int64
	TotalRevenue      float64
	AvgFootTraffic    float64
}

// StoreSalesRow is one row of the per-store sales rollup.
type StoreSalesRow struct {
	StoreID      int64
	TotalSales   float64
	NumPurchases int64
	AvgDiscount  float64
	MinPrice     float64
	MaxPrice     float64
}

// PaymentMethodRow counts uses of one payment method at one store location.
type PaymentMethodRow struct {
	StoreID       int64
	StoreLocation string
	PaymentMethod string
	UsageCount    int64
}

// AgeGroupRow summarizes purchases for one customer age bracket.
type AgeGroupRow struct {
	AgeGroup       string
	TotalPurchases int64
	AvgSpent       float64
}

// GenderRow summarizes purchases for one reported gender.
type GenderRow struct {
	Gender         string
	TotalPurchases int64
	AvgSpent       float64
}

// ReportStore is the port for the read-only analytics queries.
type ReportStore interface {
	StorePerformance(ctx context.Context) ([]StorePerformanceRow, error)
	StoreSalesStats(ctx context.Context) ([]StoreSalesRow, error)
	PaymentMethodUsage(ctx context.Context) ([]PaymentMethodRow, error)
	AgeGroupStats(ctx context.Context) ([]AgeGroupRow, error)
	GenderStats(ctx context.Context) ([]GenderRow, error)
}
