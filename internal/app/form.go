package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"retail/internal/domain"
)

// Reserved tokens that override normal field parsing at every prompt,
// matched case-insensitively.
const (
	RestartToken = "r"
	QuitToken    = "q"
)

// FormState identifies which field the transaction form is collecting, or
// which terminal state it has reached.
type FormState int

const (
	CollectingPurchaseID FormState = iota
	CollectingCustomerID
	CollectingStoreID
	CollectingStoreLocation
	CollectingProductID
	CollectingPrice
	CollectingDiscount
	CollectingPaymentMethod
	CollectingDate
	FormComplete
	FormAborted
	FormRestartRequested
)

// StepOutcome tags the result of feeding one input line to the form.
type StepOutcome int

const (
	// StepAccepted means the field passed validation and the form advanced.
	StepAccepted StepOutcome = iota
	// StepRejected means the field failed validation; the form stays on the
	// same field and Reason explains why.
	StepRejected
	// StepRestart means the operator entered the restart token. The form is
	// spent; the caller must discard it and start a fresh one.
	StepRestart
	// StepAborted means the operator entered the quit token.
	StepAborted
)

// StepResult is the tagged outcome of one form step.
type StepResult struct {
	Outcome StepOutcome
	Reason  string
}

// ErrFormDone is returned when input is fed to a form in a terminal state.
var ErrFormDone = errors.New("form is in a terminal state")

// TransactionForm collects a new purchase record one field at a time. Fields
// are validated syntactically first and then, where applicable, against
// reference data; a field must be accepted before the form advances, so
// later referential checks can rely on the already-accepted storeId and
// storeLocation. The form never resets itself: on restart the caller
// constructs a new one.
type TransactionForm struct {
	resolver *Resolver
	state    FormState
	draft    domain.Purchase
}

// NewTransactionForm creates a form positioned at the first field.
func NewTransactionForm(resolver *Resolver) *TransactionForm {
	return &TransactionForm{resolver: resolver, state: CollectingPurchaseID}
}

// State returns the form's current state.
func (f *TransactionForm) State() FormState {
	return f.state
}

// FieldLabel returns the operator-facing name of the field being collected.
func (f *TransactionForm) FieldLabel() string {
	switch f.state {
	case CollectingPurchaseID:
		return "Purchase ID"
	case CollectingCustomerID:
		return "Customer ID"
	case CollectingStoreID:
		return "Store ID"
	case CollectingStoreLocation:
		return "Store Location"
	case CollectingProductID:
		return "Product ID"
	case CollectingPrice:
		return "Product Price"
	case CollectingDiscount:
		return "Discount Percentage (0 if none)"
	case CollectingPaymentMethod:
		return fmt.Sprintf("Payment Method (%s)", strings.Join(domain.PaymentMethods, ", "))
	case CollectingDate:
		return "Transaction Date (YYYY-MM-DD)"
	default:
		return ""
	}
}

// Purchase returns the validated record. It is only available once the form
// has reached FormComplete.
func (f *TransactionForm) Purchase() (domain.Purchase, error) {
	if f.state != FormComplete {
		return domain.Purchase{}, ErrFormDone
	}
	return f.draft, nil
}

// Step feeds one input line to the form. The reserved restart and quit
// tokens are honored at every field before any parsing. A non-nil error
// means the backing store failed; the field is not consumed and the
// enclosing operation should be abandoned.
func (f *TransactionForm) Step(ctx context.Context, input string) (StepResult, error) {
	if f.state == FormComplete || f.state == FormAborted || f.state == FormRestartRequested {
		return StepResult{}, ErrFormDone
	}

	input = strings.TrimSpace(input)
	if strings.EqualFold(input, RestartToken) {
		f.state = FormRestartRequested
		return StepResult{Outcome: StepRestart}, nil
	}
	if strings.EqualFold(input, QuitToken) {
		f.state = FormAborted
		return StepResult{Outcome: StepAborted}, nil
	}

	// Syntactic check first: cheap and local.
	if verr := ValidateField(f.fieldKind(), input); verr != nil {
		return StepResult{Outcome: StepRejected, Reason: verr.Error()}, nil
	}

	// Referential check second: one round trip where the field needs one.
	switch f.state {
	case CollectingPurchaseID:
		id, _ := strconv.ParseInt(input, 10, 64)
		taken, err := f.resolver.PurchaseIDTaken(ctx, id)
		if err != nil {
			return StepResult{}, err
		}
		if taken {
			return rejected(fmt.Sprintf("Purchase ID %d is already taken.", id)), nil
		}
		f.draft.PurchaseID = id

	case CollectingCustomerID:
		id, _ := strconv.ParseInt(input, 10, 64)
		ok, err := f.resolver.CustomerExists(ctx, id)
		if err != nil {
			return StepResult{}, err
		}
		if !ok {
			return rejected(fmt.Sprintf("Customer ID %d does not exist.", id)), nil
		}
		f.draft.CustomerID = id

	case CollectingStoreID:
		id, _ := strconv.ParseInt(input, 10, 64)
		ok, err := f.resolver.StoreExists(ctx, id)
		if err != nil {
			return StepResult{}, err
		}
		if !ok {
			return rejected(fmt.Sprintf("Store ID %d does not exist.", id)), nil
		}
		f.draft.StoreID = id

	case CollectingStoreLocation:
		ok, err := f.resolver.StoreHasLocation(ctx, f.draft.StoreID, input)
		if err != nil {
			return StepResult{}, err
		}
		if !ok {
			return rejected(fmt.Sprintf("Store ID %d does not have a location at %q.", f.draft.StoreID, input)), nil
		}
		f.draft.StoreLocation = input

	case CollectingProductID:
		id, _ := strconv.ParseInt(input, 10, 64)
		ok, err := f.resolver.ProductSoldAt(ctx, id, f.draft.StoreID, f.draft.StoreLocation)
		if err != nil {
			return StepResult{}, err
		}
		if !ok {
			return rejected(f.productRejection(ctx, id)), nil
		}
		f.draft.ProductID = id

	case CollectingPrice:
		f.draft.PriceUSD, _ = strconv.ParseFloat(input, 64)

	case CollectingDiscount:
		f.draft.DiscountPercent, _ = strconv.Atoi(input)

	case CollectingPaymentMethod:
		f.draft.PaymentMethod = input

	case CollectingDate:
		f.draft.TransactionDate, _ = time.Parse(DateLayout, input)
	}

	f.advance()
	return StepResult{Outcome: StepAccepted}, nil
}

func (f *TransactionForm) advance() {
	if f.state == CollectingDate {
		f.state = FormComplete
		return
	}
	f.state++
}

func (f *TransactionForm) fieldKind() FieldKind {
	switch f.state {
	case CollectingPurchaseID:
		return FieldPurchaseID
	case CollectingCustomerID:
		return FieldCustomerID
	case CollectingStoreID:
		return FieldStoreID
	case CollectingStoreLocation:
		return FieldStoreLocation
	case CollectingProductID:
		return FieldProductID
	case CollectingPrice:
		return FieldPrice
	case CollectingDiscount:
		return FieldDiscount
	case CollectingPaymentMethod:
		return FieldPaymentMethod
	default:
		return FieldDate
	}
}

// productRejection names the store's chain in the message when the chain can
// be resolved, matching what the operator sees in the store listings.
func (f *TransactionForm) productRejection(ctx context.Context, productID int64) string {
	at := fmt.Sprintf("store %d, %s", f.draft.StoreID, f.draft.StoreLocation)
	if chain, err := f.resolver.ChainNameFor(ctx, f.draft.StoreID); err == nil && chain != "" {
		at = fmt.Sprintf("store %d (%s), %s", f.draft.StoreID, chain, f.draft.StoreLocation)
	}
	return fmt.Sprintf("Product ID %d is not sold at %s. Please choose a product sold there.", productID, at)
}

func rejected(reason string) StepResult {
	return StepResult{Outcome: StepRejected, Reason: reason}
}
