package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"retail/internal/adapter/memory"
	"retail/internal/domain"
)

func seededStore(t *testing.T) *memory.DB {
	t.Helper()
	db := memory.New()
	db.AddCustomer(12, 28, "F")
	db.AddStore(26, "Pasadena", "MegaMart")
	db.AddProduct(301)
	db.Stock(301, 26, "Pasadena")

	ctx := context.Background()
	if err := db.CreateAccount(ctx, domain.NewAccount{Username: "admin1", Password: "admin_pw", Admin: true}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := db.CreateAccount(ctx, domain.NewAccount{Username: "client1", Password: "client_pw"}); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return db
}

// runSession feeds a scripted input to a fresh App and returns everything it
// printed.
func runSession(t *testing.T, surface domain.Role, store Store, lines []string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	app := New(surface, store, in, &out)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func TestSession_AdminAddsTransaction(t *testing.T) {
	db := seededStore(t)

	// Log in, add one transaction (skipping the combo listing), log out, exit.
	out := runSession(t, domain.RoleAdministrator, db, []string{
		"2",
		"admin1",
		"admin_pw",
		"1",
		"x",
		"500000",
		"12",
		"26",
		"Pasadena",
		"301",
		"19.99",
		"10",
		"Credit Card",
		"2024-03-01",
		"",
		"q",
		"3",
	})

	for _, want := range []string{
		"Admin login successful!",
		"Purchase successfully added.",
		"Logging out...",
		"Good bye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}

	got, err := db.PurchaseByID(context.Background(), 500000)
	if err != nil || got == nil {
		t.Fatalf("purchase not stored: %v %v", got, err)
	}
	if got.CustomerID != 12 || got.StoreLocation != "Pasadena" || got.PriceUSD != 19.99 {
		t.Errorf("stored purchase = %+v", got)
	}
}

func TestSession_RestartTokenStartsOver(t *testing.T) {
	db := seededStore(t)

	out := runSession(t, domain.RoleAdministrator, db, []string{
		"2",
		"admin1",
		"admin_pw",
		"1",
		"x",
		"500000",
		"12",
		"r", // back to the first field
		"q", // abandon the fresh form
		"",
		"q",
		"3",
	})

	if !strings.Contains(out, "Restarting transaction...") {
		t.Errorf("restart not announced\noutput:\n%s", out)
	}
	if !strings.Contains(out, "Quitting transaction...") {
		t.Errorf("quit not announced\noutput:\n%s", out)
	}
	if n := strings.Count(out, "Enter Purchase ID"); n != 2 {
		t.Errorf("Purchase ID prompted %d times, want 2 (initial + after restart)", n)
	}

	got, _ := db.PurchaseByID(context.Background(), 500000)
	if got != nil {
		t.Errorf("abandoned draft was committed: %+v", got)
	}
}

func TestSession_RejectedFieldIsReprompted(t *testing.T) {
	db := seededStore(t)

	out := runSession(t, domain.RoleAdministrator, db, []string{
		"2",
		"admin1",
		"admin_pw",
		"1",
		"x",
		"5000001", // seven digits: rejected
		"500000",  // accepted
		"99",      // unknown customer: rejected
		"12",
		"26",
		"Pasadena",
		"301",
		"19.99",
		"10",
		"Credit Card",
		"2024-03-01",
		"",
		"q",
		"3",
	})

	if !strings.Contains(out, "Please try again.") {
		t.Errorf("rejection message missing\noutput:\n%s", out)
	}
	if !strings.Contains(out, "Purchase successfully added.") {
		t.Errorf("corrected draft was not committed\noutput:\n%s", out)
	}

	got, _ := db.PurchaseByID(context.Background(), 500000)
	if got == nil || got.CustomerID != 12 {
		t.Errorf("stored purchase = %+v", got)
	}
}

func TestSession_ClientCredentialOnAdminSurface(t *testing.T) {
	db := seededStore(t)

	out := runSession(t, domain.RoleAdministrator, db, []string{
		"2",
		"client1",
		"client_pw",
		"b", // back to the landing page
		"3",
	})

	if !strings.Contains(out, "You are registered as a client. Please use the client interface.") {
		t.Errorf("wrong-interface message missing\noutput:\n%s", out)
	}
	if strings.Contains(out, "login successful") {
		t.Errorf("session established despite wrong interface\noutput:\n%s", out)
	}
}

func TestSession_ClientSignupThenLogin(t *testing.T) {
	db := seededStore(t)

	out := runSession(t, domain.RoleClient, db, []string{
		"1", // create an account
		"new_client",
		"pw123",
		"Ada",
		"Lovelace",
		"0",
		"555-0100",
		"2", // log in with the new account
		"new_client",
		"pw123",
		"q",
		"3",
	})

	for _, want := range []string{
		"User account created successfully.",
		"Client login successful!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}

	if code, _ := db.Authenticate(context.Background(), "new_client", "pw123"); code != 1 {
		t.Errorf("authenticate code = %d, want 1", code)
	}
}

func TestSession_SignupRejectsTakenUsername(t *testing.T) {
	db := seededStore(t)

	out := runSession(t, domain.RoleClient, db, []string{
		"1",
		"client1", // already registered
		"pw123",
		"Ada",
		"Lovelace",
		"0",
		"555-0100",
		"b", // give up
		"3",
	})

	if !strings.Contains(out, "already taken") {
		t.Errorf("taken-username message missing\noutput:\n%s", out)
	}
}
