// Package memory implements the domain store ports in memory for tests and
// offline development.
package memory

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"retail/internal/domain"
)

type storeKey struct {
	id       int64
	location string
}

type comboKey struct {
	productID int64
	storeID   int64
	location  string
}

type customer struct {
	age    int
	gender string
}

type account struct {
	passwordHash []byte
	admin        bool
}

type traffic struct {
	key   storeKey
	count int
}

// DB implements an in-memory database storage.
type DB struct {
	mu        sync.Mutex
	customers map[int64]customer
	stores    map[storeKey]string
	products  map[int64]bool
	inventory map[comboKey]bool
	purchases map[int64]domain.Purchase
	accounts  map[string]account
	footfall  []traffic
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		customers: make(map[int64]customer),
		stores:    make(map[storeKey]string),
		products:  make(map[int64]bool),
		inventory: make(map[comboKey]bool),
		purchases: make(map[int64]domain.Purchase),
		accounts:  make(map[string]account),
	}
}

// Ensure interfaces are met.
var _ domain.ReferenceStore = (*DB)(nil)
var _ domain.PurchaseStore = (*DB)(nil)
var _ domain.AccountStore = (*DB)(nil)
var _ domain.ReportStore = (*DB)(nil)

// --- seeding helpers ---

// AddCustomer registers a customer row.
func (db *DB) AddCustomer(id int64, age int, gender string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.customers[id] = customer{age: age, gender: gender}
}

// AddStore registers a store at a location under a chain name.
func (db *DB) AddStore(id int64, location, chain string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stores[storeKey{id, location}] = chain
}

// AddProduct registers a product row.
func (db *DB) AddProduct(id int64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.products[id] = true
}

// Stock records that a product is carried at a (store, location) pair.
func (db *DB) Stock(productID, storeID int64, location string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.inventory[comboKey{productID, storeID, location}] = true
}

// RecordFootTraffic adds one foot-traffic observation for a location.
func (db *DB) RecordFootTraffic(storeID int64, location string, count int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.footfall = append(db.footfall, traffic{storeKey{storeID, location}, count})
}

// --- ReferenceStore ---

// CustomerExists reports whether the customer is registered.
func (db *DB) CustomerExists(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.customers[id]
	return ok, nil
}

// StoreExists reports whether any location is registered for the store id.
func (db *DB) StoreExists(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for k := range db.stores {
		if k.id == id {
			return true, nil
		}
	}
	return false, nil
}

// StoreHasLocation reports whether the store is registered at the location.
func (db *DB) StoreHasLocation(ctx context.Context, storeID int64, location string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.stores[storeKey{storeID, location}]
	return ok, nil
}

// ProductSoldAt reports whether the product is stocked at the pair.
func (db *DB) ProductSoldAt(ctx context.Context, productID, storeID int64, location string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.inventory[comboKey{productID, storeID, location}], nil
}

// PurchaseIDTaken reports whether a purchase with the id exists.
func (db *DB) PurchaseIDTaken(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.purchases[id]
	return ok, nil
}

// ChainNameFor returns the chain name for a store, or "" when unknown.
func (db *DB) ChainNameFor(ctx context.Context, storeID int64) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for k, chain := range db.stores {
		if k.id == storeID {
			return chain, nil
		}
	}
	return "", nil
}

// --- PurchaseStore ---

// InsertPurchase stores a purchase, enforcing purchase id uniqueness.
func (db *DB) InsertPurchase(ctx context.Context, p domain.Purchase) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.purchases[p.PurchaseID]; ok {
		return domain.ErrDuplicatePurchaseID
	}
	db.purchases[p.PurchaseID] = p
	return nil
}

// PurchaseByID returns the stored purchase, or nil when absent.
func (db *DB) PurchaseByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.purchases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// NextPurchaseID returns one above the highest stored purchase id.
func (db *DB) NextPurchaseID(ctx context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var max int64
	for id := range db.purchases {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

// MaxCustomerID returns the highest registered customer id.
func (db *DB) MaxCustomerID(ctx context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var max int64
	for id := range db.customers {
		if id > max {
			max = id
		}
	}
	return max, nil
}

// SaleableCombos lists stocked (product, store, location) triples in a
// stable order.
func (db *DB) SaleableCombos(ctx context.Context) ([]domain.SaleableCombo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	combos := make([]domain.SaleableCombo, 0, len(db.inventory))
	for k := range db.inventory {
		combos = append(combos, domain.SaleableCombo{
			ProductID:     k.productID,
			StoreID:       k.storeID,
			StoreLocation: k.location,
		})
	}
	sort.Slice(combos, func(i, j int) bool {
		a, b := combos[i], combos[j]
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		if a.StoreLocation != b.StoreLocation {
			return a.StoreLocation < b.StoreLocation
		}
		return a.ProductID < b.ProductID
	})
	return combos, nil
}

// --- AccountStore ---

// UsernameTaken reports whether an account with the username exists.
func (db *DB) UsernameTaken(ctx context.Context, username string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.accounts[username]
	return ok, nil
}

// Authenticate checks a credential against the stored hash and returns the
// role code: 0 unauthenticated, 1 client, 2 administrator.
func (db *DB) Authenticate(ctx context.Context, username, password string) (int, error) {
	db.mu.Lock()
	acct, ok := db.accounts[username]
	db.mu.Unlock()
	if !ok {
		return 0, nil
	}
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		return 0, nil
	}
	if acct.admin {
		return 2, nil
	}
	return 1, nil
}

// CreateAccount registers a new account, hashing the password the same way
// the SQL routine does with its salted hash.
func (db *DB) CreateAccount(ctx context.Context, acct domain.NewAccount) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.accounts[acct.Username] = account{passwordHash: hash, admin: acct.Admin}
	return nil
}

// --- ReportStore ---

// StorePerformance aggregates purchases and foot traffic per location.
func (db *DB) StorePerformance(ctx context.Context) ([]domain.StorePerformanceRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	byStore := make(map[storeKey]*domain.StorePerformanceRow)
	keys := make([]storeKey, 0, len(db.stores))
	for k := range db.stores {
		keys = append(keys, k)
		byStore[k] = &domain.StorePerformanceRow{StoreID: k.id, StoreLocation: k.location}
	}
	for _, p := range db.purchases {
		if row, ok := byStore[storeKey{p.StoreID, p.StoreLocation}]; ok {
			row.TotalTransactions++
			row.TotalRevenue += p.PriceUSD
		}
	}
	counts := make(map[storeKey]int)
	sums := make(map[storeKey]int)
	for _, t := range db.footfall {
		counts[t.key]++
		sums[t.key] += t.count
	}
	for k, row := range byStore {
		if counts[k] > 0 {
			row.AvgFootTraffic = float64(sums[k]) / float64(counts[k])
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}
		return keys[i].location < keys[j].location
	})
	out := make([]domain.StorePerformanceRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byStore[k])
	}
	return out, nil
}

// StoreSalesStats rolls purchases up per store id.
func (db *DB) StoreSalesStats(ctx context.Context) ([]domain.StoreSalesRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	byID := make(map[int64]*domain.StoreSalesRow)
	discounts := make(map[int64]int)
	for _, p := range db.purchases {
		row, ok := byID[p.StoreID]
		if !ok {
			row = &domain.StoreSalesRow{StoreID: p.StoreID, MinPrice: p.PriceUSD, MaxPrice: p.PriceUSD}
			byID[p.StoreID] = row
		}
		row.TotalSales += p.PriceUSD
		row.NumPurchases++
		discounts[p.StoreID] += p.DiscountPercent
		if p.PriceUSD < row.MinPrice {
			row.MinPrice = p.PriceUSD
		}
		if p.PriceUSD > row.MaxPrice {
			row.MaxPrice = p.PriceUSD
		}
	}

	out := make([]domain.StoreSalesRow, 0, len(byID))
	for id, row := range byID {
		row.AvgDiscount = float64(discounts[id]) / float64(row.NumPurchases)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out, nil
}

// PaymentMethodUsage counts payment method uses per store location.
func (db *DB) PaymentMethodUsage(ctx context.Context) ([]domain.PaymentMethodRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	type usageKey struct {
		store  storeKey
		method string
	}
	counts := make(map[usageKey]int64)
	for _, p := range db.purchases {
		counts[usageKey{storeKey{p.StoreID, p.StoreLocation}, p.PaymentMethod}]++
	}

	out := make([]domain.PaymentMethodRow, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.PaymentMethodRow{
			StoreID:       k.store.id,
			StoreLocation: k.store.location,
			PaymentMethod: k.method,
			UsageCount:    n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		if a.StoreLocation != b.StoreLocation {
			return a.StoreLocation < b.StoreLocation
		}
		return a.UsageCount > b.UsageCount
	})
	return out, nil
}

// AgeGroupStats brackets purchases by customer age.
func (db *DB) AgeGroupStats(ctx context.Context) ([]domain.AgeGroupRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	totals := make(map[string]int64)
	sums := make(map[string]float64)
	for _, p := range db.purchases {
		c, ok := db.customers[p.CustomerID]
		if !ok {
			continue
		}
		g := ageGroup(c.age)
		totals[g]++
		sums[g] += p.PriceUSD
	}

	groups := make([]string, 0, len(totals))
	for g := range totals {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	out := make([]domain.AgeGroupRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.AgeGroupRow{
			AgeGroup:       g,
			TotalPurchases: totals[g],
			AvgSpent:       sums[g] / float64(totals[g]),
		})
	}
	return out, nil
}

// GenderStats groups purchases by reported gender.
func (db *DB) GenderStats(ctx context.Context) ([]domain.GenderRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	totals := make(map[string]int64)
	sums := make(map[string]float64)
	for _, p := range db.purchases {
		c, ok := db.customers[p.CustomerID]
		if !ok {
			continue
		}
		totals[c.gender]++
		sums[c.gender] += p.PriceUSD
	}

	genders := make([]string, 0, len(totals))
	for g := range totals {
		genders = append(genders, g)
	}
	sort.Strings(genders)
	out := make([]domain.GenderRow, 0, len(genders))
	for _, g := range genders {
		out = append(out, domain.GenderRow{
			Gender:         g,
			TotalPurchases: totals[g],
			AvgSpent:       sums[g] / float64(totals[g]),
		})
	}
	return out, nil
}

func ageGroup(age int) string {
	switch {
	case age >= 18 && age <= 25:
		return "18-25"
	case age >= 26 && age <= 35:
		return "26-35"
	case age >= 36 && age <= 50:
		return "36-50"
	default:
		return "50+"
	}
}
