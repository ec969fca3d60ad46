package cli

import (
	"context"
	"errors"

	"retail/internal/domain"
)

// loginPage collects credentials until a session is established, the
// operator backs out, or the store becomes unavailable.
func (a *App) loginPage(ctx context.Context) error {
	for {
		a.ui.SectionHeader("Login Page")
		a.ui.Sayf("Welcome! Please log in as %s.", article(a.surface))

		cred, err := a.readCredential()
		if err != nil {
			return err
		}

		session, err := a.gate.Login(ctx, cred, a.surface)
		switch {
		case err == nil:
			a.ui.Sayf("%s login successful!", titleRole(session.Role))
			return a.roleMenu(ctx, session)

		case errors.Is(err, domain.ErrWrongInterface):
			a.ui.Sayf("You are registered as %s. Please use the %s interface.",
				article(otherSurface(a.surface)), otherSurface(a.surface))

		case errors.Is(err, domain.ErrInvalidCredential):
			a.ui.Sayf("Invalid username or password.")

		case errors.Is(err, domain.ErrStoreUnavailable):
			a.ui.Sayf("The store could not be reached. Please try again later.")
			return nil

		default:
			// Validation or referential rejection: explain and offer a retry.
			a.ui.Sayf("%s. Please try again.", capitalized(err.Error()))
		}

		back, err := a.ui.ReadLine("Press Enter to try again or type b to return to the main page: ")
		if err != nil {
			return err
		}
		if back == "b" {
			return nil
		}
	}
}

// signupPage registers a new account for this surface.
func (a *App) signupPage(ctx context.Context) error {
	for {
		a.ui.SectionHeader("Create Account")

		cred, err := a.readCredential()
		if err != nil {
			return err
		}
		acct := domain.NewAccount{
			Username: cred.Username,
			Password: cred.Password,
			Admin:    a.surface == domain.RoleAdministrator,
		}

		if acct.FirstName, err = a.ui.ReadLine("Enter first name: "); err != nil {
			return err
		}
		if acct.LastName, err = a.ui.ReadLine("Enter last name: "); err != nil {
			return err
		}
		if acct.Admin {
			if acct.EmployeeType, err = a.ui.ReadLine("Enter identity (researcher, engineer, or maintenance): "); err != nil {
				return err
			}
		} else {
			mgr, err := a.ui.ReadLine("Are you a store manager? If yes, type 1. Else, 0: ")
			if err != nil {
				return err
			}
			acct.StoreManager = mgr == "1"
			if acct.PhoneNumber, err = a.ui.ReadLine("Enter phone number: "); err != nil {
				return err
			}
		}

		err = a.gate.CreateAccount(ctx, acct)
		if err == nil {
			a.ui.Sayf("User account created successfully.")
			return nil
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			a.ui.Sayf("The store could not be reached. Please try again later.")
			return nil
		}
		a.ui.Sayf("%s. Please try again.", capitalized(err.Error()))

		back, err := a.ui.ReadLine("Press Enter to retry or type b to return to the main page: ")
		if err != nil {
			return err
		}
		if back == "b" {
			return nil
		}
	}
}

func (a *App) readCredential() (domain.Credential, error) {
	var cred domain.Credential
	var err error
	if cred.Username, err = a.ui.ReadLine("Enter username: "); err != nil {
		return cred, err
	}
	cred.Password, err = a.ui.ReadLine("Enter password: ")
	return cred, err
}

func otherSurface(r domain.Role) domain.Role {
	if r == domain.RoleAdministrator {
		return domain.RoleClient
	}
	return domain.RoleAdministrator
}

func article(r domain.Role) string {
	if r == domain.RoleAdministrator {
		return "an administrator"
	}
	return "a client"
}

func titleRole(r domain.Role) string {
	if r == domain.RoleAdministrator {
		return "Admin"
	}
	return "Client"
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
