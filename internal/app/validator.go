// Package app holds the application services and business logic.
package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"retail/internal/domain"
)

// FieldKind selects the syntactic rule set applied to a raw input string.
type FieldKind int

const (
	FieldUsername FieldKind = iota
	FieldPassword
	FieldPurchaseID
	FieldCustomerID
	FieldStoreID
	FieldStoreLocation
	FieldProductID
	FieldPrice
	FieldDiscount
	FieldPaymentMethod
	FieldDate
)

// DateLayout is the calendar format transaction dates must use.
const DateLayout = "2006-01-02"

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func (k FieldKind) name() string {
	switch k {
	case FieldUsername:
		return "username"
	case FieldPassword:
		return "password"
	case FieldPurchaseID:
		return "purchase id"
	case FieldCustomerID:
		return "customer id"
	case FieldStoreID:
		return "store id"
	case FieldStoreLocation:
		return "store location"
	case FieldProductID:
		return "product id"
	case FieldPrice:
		return "price"
	case FieldDiscount:
		return "discount percent"
	case FieldPaymentMethod:
		return "payment method"
	case FieldDate:
		return "transaction date"
	default:
		return "field"
	}
}

// ValidateField applies the syntactic rules for the given field kind to raw.
// It is pure: no I/O, deterministic, and a nil return means the value is
// well-formed. Referential agreement with stored data is not checked here.
func ValidateField(kind FieldKind, raw string) *domain.ValidationError {
	reject := func(reason string) *domain.ValidationError {
		return &domain.ValidationError{Field: kind.name(), Reason: reason}
	}

	if raw == "" {
		return reject("must not be empty")
	}

	switch kind {
	case FieldUsername, FieldPassword:
		if strings.ContainsAny(raw, " \t") {
			return reject("must not contain spaces")
		}
		if !identifierPattern.MatchString(raw) {
			return reject("may only contain letters, numbers, and underscores")
		}

	case FieldPurchaseID, FieldProductID:
		if !isDigits(raw) {
			return reject("must be a number")
		}
		if len(raw) >= 7 {
			return reject("must be fewer than 7 digits")
		}

	case FieldCustomerID, FieldStoreID:
		if !isDigits(raw) {
			return reject("must be a number")
		}

	case FieldStoreLocation:
		// Free-form text; non-empty is the only syntactic rule. Agreement
		// with the store is referential.

	case FieldPrice:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return reject("must be a numeric amount")
		}
		if v < 0 || v >= 100000 {
			return reject("must be at least 0 and below 100000")
		}

	case FieldDiscount:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return reject("must be a whole number")
		}
		if v < 0 || v > 100 {
			return reject("must be between 0 and 100")
		}

	case FieldPaymentMethod:
		if !contains(domain.PaymentMethods, raw) {
			return reject(fmt.Sprintf("must be one of: %s (check spelling and capitalization)",
				strings.Join(domain.PaymentMethods, ", ")))
		}

	case FieldDate:
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return reject("must be a date in YYYY-MM-DD format")
		}
		if d.After(today()) {
			return reject("must not be in the future")
		}
	}
	return nil
}

// today returns the end of the current calendar day so that any date up to
// and including today passes the future check.
func today() time.Time {
	now := time.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, now.Location())
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
