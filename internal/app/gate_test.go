package app

import (
	"context"
	"errors"
	"testing"

	"retail/internal/domain"
)

type mockAccountStore struct {
	usernameTakenFn func(ctx context.Context, username string) (bool, error)
	authenticateFn  func(ctx context.Context, username, password string) (int, error)
	createAccountFn func(ctx context.Context, acct domain.NewAccount) error
}

func (m *mockAccountStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	if m.usernameTakenFn != nil {
		return m.usernameTakenFn(ctx, username)
	}
	return true, nil
}

func (m *mockAccountStore) Authenticate(ctx context.Context, username, password string) (int, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, username, password)
	}
	return 0, nil
}

func (m *mockAccountStore) CreateAccount(ctx context.Context, acct domain.NewAccount) error {
	if m.createAccountFn != nil {
		return m.createAccountFn(ctx, acct)
	}
	return nil
}

func TestSessionGate_Login_Success(t *testing.T) {
	accounts := &mockAccountStore{
		authenticateFn: func(ctx context.Context, username, password string) (int, error) {
			if username != "admin1" || password != "secret_pw" {
				t.Errorf("authenticate called with (%q, %q)", username, password)
			}
			return 2, nil
		},
	}
	gate := NewSessionGate(accounts)

	session, err := gate.Login(context.Background(),
		domain.Credential{Username: "admin1", Password: "secret_pw"},
		domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Role != domain.RoleAdministrator || session.Username != "admin1" {
		t.Errorf("session = %+v", session)
	}
}

func TestSessionGate_Login_UnknownUsername(t *testing.T) {
	authCalled := false
	accounts := &mockAccountStore{
		usernameTakenFn: func(ctx context.Context, username string) (bool, error) {
			return false, nil
		},
		authenticateFn: func(ctx context.Context, username, password string) (int, error) {
			authCalled = true
			return 0, nil
		},
	}
	gate := NewSessionGate(accounts)

	_, err := gate.Login(context.Background(),
		domain.Credential{Username: "alice", Password: "pw123"},
		domain.RoleClient)

	var refErr *domain.ReferentialError
	if !errors.As(err, &refErr) {
		t.Fatalf("err = %v, want ReferentialError", err)
	}
	if refErr.Field != "username" {
		t.Errorf("field = %q", refErr.Field)
	}
	if authCalled {
		t.Error("authenticate was called for an unknown username")
	}
}

func TestSessionGate_Login_WrongInterface(t *testing.T) {
	// A client role presented to the administrator surface.
	accounts := &mockAccountStore{
		authenticateFn: func(ctx context.Context, username, password string) (int, error) {
			return 1, nil
		},
	}
	gate := NewSessionGate(accounts)

	session, err := gate.Login(context.Background(),
		domain.Credential{Username: "bob", Password: "pw123"},
		domain.RoleAdministrator)
	if !errors.Is(err, domain.ErrWrongInterface) {
		t.Fatalf("err = %v, want ErrWrongInterface", err)
	}
	if session != nil {
		t.Error("session was created despite wrong interface")
	}
}

func TestSessionGate_Login_InvalidCredential(t *testing.T) {
	accounts := &mockAccountStore{
		authenticateFn: func(ctx context.Context, username, password string) (int, error) {
			return 0, nil
		},
	}
	gate := NewSessionGate(accounts)

	_, err := gate.Login(context.Background(),
		domain.Credential{Username: "bob", Password: "wrong_pw"},
		domain.RoleClient)
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
}

func TestSessionGate_Login_SyntacticRejection(t *testing.T) {
	lookedUp := false
	accounts := &mockAccountStore{
		usernameTakenFn: func(ctx context.Context, username string) (bool, error) {
			lookedUp = true
			return true, nil
		},
	}
	gate := NewSessionGate(accounts)

	tests := []domain.Credential{
		{Username: "", Password: "pw"},
		{Username: "bad user", Password: "pw"},
		{Username: "user", Password: "p w"},
		{Username: "user!", Password: "pw"},
	}
	for _, cred := range tests {
		_, err := gate.Login(context.Background(), cred, domain.RoleClient)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("cred %+v: err = %v, want ValidationError", cred, err)
		}
	}
	if lookedUp {
		t.Error("store consulted before syntactic checks passed")
	}
}

func TestSessionGate_Login_StoreFailure(t *testing.T) {
	accounts := &mockAccountStore{
		usernameTakenFn: func(ctx context.Context, username string) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	gate := NewSessionGate(accounts)

	_, err := gate.Login(context.Background(),
		domain.Credential{Username: "bob", Password: "pw123"},
		domain.RoleClient)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestSessionGate_CreateAccount_Success(t *testing.T) {
	var created domain.NewAccount
	accounts := &mockAccountStore{
		usernameTakenFn: func(ctx context.Context, username string) (bool, error) {
			return false, nil
		},
		createAccountFn: func(ctx context.Context, acct domain.NewAccount) error {
			created = acct
			return nil
		},
	}
	gate := NewSessionGate(accounts)

	acct := domain.NewAccount{
		Username:     "alice",
		Password:     "pw123",
		Admin:        true,
		FirstName:    "Alice",
		LastName:     "Liddell",
		EmployeeType: "engineer",
	}
	if err := gate.CreateAccount(context.Background(), acct); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if created.Username != "alice" || !created.Admin {
		t.Errorf("created = %+v", created)
	}
}

func TestSessionGate_CreateAccount_UsernameAbsentRequirement(t *testing.T) {
	// The same username rejected at login for not existing is accepted at
	// signup, and vice versa.
	exists := map[string]bool{"taken_user": true}
	accounts := &mockAccountStore{
		usernameTakenFn: func(ctx context.Context, username string) (bool, error) {
			return exists[username], nil
		},
	}
	gate := NewSessionGate(accounts)

	err := gate.CreateAccount(context.Background(), domain.NewAccount{
		Username: "taken_user", Password: "pw123",
		FirstName: "A", LastName: "B",
	})
	var refErr *domain.ReferentialError
	if !errors.As(err, &refErr) {
		t.Fatalf("taken username: err = %v, want ReferentialError", err)
	}

	err = gate.CreateAccount(context.Background(), domain.NewAccount{
		Username: "alice", Password: "pw123",
		FirstName: "A", LastName: "B",
	})
	if err != nil {
		t.Fatalf("fresh username rejected: %v", err)
	}
}

func TestSessionGate_CreateAccount_AdminEmployeeType(t *testing.T) {
	accounts := &mockAccountStore{
		usernameTakenFn: func(ctx context.Context, username string) (bool, error) {
			return false, nil
		},
	}
	gate := NewSessionGate(accounts)

	base := domain.NewAccount{
		Username: "alice", Password: "pw123", Admin: true,
		FirstName: "A", LastName: "B",
	}

	for _, et := range domain.EmployeeTypes {
		acct := base
		acct.EmployeeType = et
		if err := gate.CreateAccount(context.Background(), acct); err != nil {
			t.Errorf("employee type %q rejected: %v", et, err)
		}
	}

	acct := base
	acct.EmployeeType = "astronaut"
	var verr *domain.ValidationError
	if err := gate.CreateAccount(context.Background(), acct); !errors.As(err, &verr) {
		t.Errorf("unknown employee type: err = %v, want ValidationError", err)
	}
}
