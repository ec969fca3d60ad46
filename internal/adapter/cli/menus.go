package cli

import (
	"context"

	"retail/internal/domain"
)

// roleMenu dispatches to the operation set the session's role permits. The
// session lasts until the operator quits the menu; quitting destroys it and
// returns to the landing page.
func (a *App) roleMenu(ctx context.Context, session *domain.Session) error {
	if session.Role == domain.RoleAdministrator {
		return a.adminMenu(ctx)
	}
	return a.clientMenu(ctx)
}

func (a *App) adminMenu(ctx context.Context) error {
	for {
		a.ui.SectionHeader("Menu Page")
		a.ui.Sayf("What would you like to do?")
		a.ui.Sayf("  (1) - Add a New Transaction")
		a.ui.Sayf("  (2) - View Store Specific Performance Reports")
		a.ui.Sayf("  (3) - View Store Chain Performance Reports")
		a.ui.Sayf("  (q) - quit")
		a.ui.Sayf("")

		choice, err := a.ui.ReadLine("Enter an option: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			if err := a.transactionPage(ctx); err != nil {
				return err
			}
		case "2":
			if err := a.storePerformancePage(ctx); err != nil {
				return err
			}
		case "3":
			if err := a.storeSalesPage(ctx); err != nil {
				return err
			}
		case "q", "Q":
			a.ui.Sayf("Logging out...")
			return nil
		default:
			a.ui.Sayf("Invalid option. Please try again.")
		}
		a.ui.PressEnter("\nPress Enter to return to the Admin Menu...")
	}
}

func (a *App) clientMenu(ctx context.Context) error {
	for {
		a.ui.SectionHeader("Menu Page")
		a.ui.Sayf("What would you like to do to explore retail data?")
		a.ui.Sayf("  (A) - Get Age Statistics")
		a.ui.Sayf("  (B) - Get Gender Statistics")
		a.ui.Sayf("  (C) - Get Store Statistics")
		a.ui.Sayf("  (q) - quit")
		a.ui.Sayf("")

		choice, err := a.ui.ReadLine("Enter an option: ")
		if err != nil {
			return err
		}
		switch choice {
		case "a", "A":
			if err := a.ageStatsPage(ctx); err != nil {
				return err
			}
		case "b", "B":
			if err := a.genderStatsPage(ctx); err != nil {
				return err
			}
		case "c", "C":
			if err := a.paymentMethodPage(ctx); err != nil {
				return err
			}
		case "q", "Q":
			a.ui.Sayf("Logging out...")
			return nil
		default:
			a.ui.Sayf("Invalid option. Please try again.")
		}
		a.ui.PressEnter("\nPress Enter to return to the Client Menu...")
	}
}
