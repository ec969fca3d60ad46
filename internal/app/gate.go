package app

import (
	"context"

	"retail/internal/domain"
)

// SessionGate resolves credentials to a role and restricts which program
// surface the resulting session may use. The password is handed to the
// store's authenticate routine once and never retained.
type SessionGate struct {
	accounts domain.AccountStore
}

// NewSessionGate creates a gate over the given account store.
func NewSessionGate(accounts domain.AccountStore) *SessionGate {
	return &SessionGate{accounts: accounts}
}

// Login authenticates a credential for the given program surface
// (RoleAdministrator or RoleClient). The syntactic checks are the same ones
// signup applies, so any registrable credential can always attempt login. A
// valid credential belonging to the other surface fails with
// ErrWrongInterface rather than ErrInvalidCredential.
func (g *SessionGate) Login(ctx context.Context, cred domain.Credential, surface domain.Role) (*domain.Session, error) {
	if err := validateCredential(cred); err != nil {
		return nil, err
	}

	taken, err := g.accounts.UsernameTaken(ctx, cred.Username)
	if err != nil {
		return nil, unavailable("username lookup", err)
	}
	if !taken {
		return nil, &domain.ReferentialError{Field: "username", Reason: "does not exist"}
	}

	code, err := g.accounts.Authenticate(ctx, cred.Username, cred.Password)
	if err != nil {
		return nil, unavailable("authenticate", err)
	}

	role := domain.RoleFromCode(code)
	if role == domain.RoleNone {
		return nil, domain.ErrInvalidCredential
	}
	if role != surface {
		return nil, domain.ErrWrongInterface
	}
	return &domain.Session{Username: cred.Username, Role: role}, nil
}

// CreateAccount registers a new application user. The username must not be
// taken, the credential must pass the same syntactic rules as login, and
// administrator accounts must carry a recognized employee type.
func (g *SessionGate) CreateAccount(ctx context.Context, acct domain.NewAccount) error {
	if err := validateCredential(domain.Credential{Username: acct.Username, Password: acct.Password}); err != nil {
		return err
	}
	if acct.FirstName == "" {
		return &domain.ValidationError{Field: "first name", Reason: "must not be empty"}
	}
	if acct.LastName == "" {
		return &domain.ValidationError{Field: "last name", Reason: "must not be empty"}
	}
	if acct.Admin && !contains(domain.EmployeeTypes, acct.EmployeeType) {
		return &domain.ValidationError{Field: "employee type", Reason: "must be researcher, engineer, or maintenance"}
	}

	taken, err := g.accounts.UsernameTaken(ctx, acct.Username)
	if err != nil {
		return unavailable("username lookup", err)
	}
	if taken {
		return &domain.ReferentialError{Field: "username", Reason: "is already taken"}
	}

	if err := g.accounts.CreateAccount(ctx, acct); err != nil {
		return unavailable("account create", err)
	}
	return nil
}

func validateCredential(cred domain.Credential) error {
	if verr := ValidateField(FieldUsername, cred.Username); verr != nil {
		return verr
	}
	if verr := ValidateField(FieldPassword, cred.Password); verr != nil {
		return verr
	}
	return nil
}
