package cli

import (
	"context"
	"errors"
	"io"

	"retail/internal/app"
	"retail/internal/domain"
)

// Store is the full set of ports the terminal surface needs. Both the
// postgres and memory adapters satisfy it.
type Store interface {
	domain.ReferenceStore
	domain.PurchaseStore
	domain.AccountStore
	domain.ReportStore
}

// App wires the services to one program surface (administrator or client)
// and drives the interactive session.
type App struct {
	ui        *UI
	surface   domain.Role
	gate      *app.SessionGate
	resolver  *app.Resolver
	committer *app.CommitCoordinator
	reports   *app.ReportService
	purchases domain.PurchaseStore
}

// New creates an App for the given surface over one store connection.
func New(surface domain.Role, store Store, in io.Reader, out io.Writer) *App {
	return &App{
		ui:        NewUI(in, out),
		surface:   surface,
		gate:      app.NewSessionGate(store),
		resolver:  app.NewResolver(store),
		committer: app.NewCommitCoordinator(store),
		reports:   app.NewReportService(store),
		purchases: store,
	}
}

// Run drives the landing page until the operator exits. Store-availability
// failures abandon the running operation and come back here; they never
// crash the session loop.
func (a *App) Run(ctx context.Context) error {
	for {
		a.ui.SectionHeader(a.surfaceTitle())
		a.ui.Sayf("Would you like to:")
		a.ui.Sayf("1. Create an account")
		a.ui.Sayf("2. Login")
		a.ui.Sayf("3. Exit")

		choice, err := a.ui.ReadLine("Enter your choice (1/2/3): ")
		if err != nil {
			return exitOnEOF(err)
		}
		switch choice {
		case "1":
			if err := a.signupPage(ctx); err != nil {
				return exitOnEOF(err)
			}
		case "2":
			if err := a.loginPage(ctx); err != nil {
				return exitOnEOF(err)
			}
		case "3":
			a.ui.Sayf("Good bye!")
			return nil
		default:
			a.ui.Sayf("Invalid option. Please try again.")
		}
	}
}

func (a *App) surfaceTitle() string {
	if a.surface == domain.RoleAdministrator {
		return "Administration Page"
	}
	return "Client Page"
}

// exitOnEOF treats end of input as a normal quit so piped sessions end
// cleanly.
func exitOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
