package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"retail/internal/app"
	"retail/internal/domain"
)

// transactionPage drives the transaction entry form: guidance, the
// field-by-field loop, and the single commit. The form itself never resets;
// a restart discards it and starts a fresh one here.
func (a *App) transactionPage(ctx context.Context) error {
	a.ui.SectionHeader("Purchase Page")
	a.ui.Sayf("Adding a New Purchase.")
	a.ui.Sayf("1) This must be at an existing store by an existing customer.")
	a.ui.Sayf("2) The product must be sold at said store.")
	if next, err := a.purchases.NextPurchaseID(ctx); err == nil {
		a.ui.Sayf("3) The next available purchase ID is %d", next)
	}
	if max, err := a.purchases.MaxCustomerID(ctx); err == nil && max > 0 {
		a.ui.Sayf("4) The available customer IDs are 1 - %d", max)
	}

	see, err := a.ui.ReadLine("\nTo see possible store, store location, product combos enter y. Else enter any key: ")
	if err != nil {
		return err
	}
	if strings.EqualFold(see, "y") {
		if err := a.saleableCombosPage(ctx); err != nil {
			return err
		}
	}

	for {
		form := app.NewTransactionForm(a.resolver)
		result, err := a.collectDraft(ctx, form)
		if err != nil {
			return err
		}
		switch result {
		case app.FormAborted:
			a.ui.Sayf("Quitting transaction...")
			return nil
		case app.FormRestartRequested:
			a.ui.Sayf("Restarting transaction...")
			continue
		}

		purchase, err := form.Purchase()
		if err != nil {
			return err
		}
		done, err := a.commitWithRetry(ctx, purchase)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		// Operator asked to restart after a duplicate-key conflict.
	}
}

// collectDraft feeds operator input to the form until it reaches a terminal
// state. Rejections re-prompt the same field; a store failure abandons the
// page.
func (a *App) collectDraft(ctx context.Context, form *app.TransactionForm) (app.FormState, error) {
	for {
		prompt := fmt.Sprintf("Enter %s (or r to restart inputs and q to stop transaction): ", form.FieldLabel())
		input, err := a.ui.ReadLine(prompt)
		if err != nil {
			return form.State(), err
		}

		res, err := form.Step(ctx, input)
		if err != nil {
			a.ui.Sayf("The store could not be reached. Transaction abandoned.")
			return app.FormAborted, nil
		}
		switch res.Outcome {
		case app.StepRejected:
			a.ui.Sayf("%s Please try again.", sentence(res.Reason))
		case app.StepRestart, app.StepAborted:
			return form.State(), nil
		}
		if form.State() == app.FormComplete {
			return app.FormComplete, nil
		}
	}
}

// commitWithRetry performs the single commit attempt. On a duplicate-key
// race only the purchase id is re-collected; everything else in the draft
// survives. Returns done=false when the operator chose to restart the whole
// form instead.
func (a *App) commitWithRetry(ctx context.Context, p domain.Purchase) (bool, error) {
	for {
		err := a.committer.Commit(ctx, p)
		if err == nil {
			a.ui.Sayf("Purchase successfully added.")
			return true, nil
		}
		if !errors.Is(err, domain.ErrDuplicatePurchaseID) {
			a.ui.Sayf("The store could not be reached. Transaction abandoned.")
			return true, nil
		}

		a.ui.Sayf("Purchase ID %d was claimed by another session.", p.PurchaseID)
		id, state, err := a.reCollectPurchaseID(ctx)
		if err != nil {
			return true, err
		}
		switch state {
		case app.FormAborted:
			a.ui.Sayf("Quitting transaction...")
			return true, nil
		case app.FormRestartRequested:
			a.ui.Sayf("Restarting transaction...")
			return false, nil
		}
		p.PurchaseID = id
	}
}

// reCollectPurchaseID prompts for a replacement purchase id, honoring the
// reserved tokens and the same syntactic and referential rules the form
// applies.
func (a *App) reCollectPurchaseID(ctx context.Context) (int64, app.FormState, error) {
	for {
		input, err := a.ui.ReadLine("Enter a new Purchase ID (or r to restart inputs and q to stop transaction): ")
		if err != nil {
			return 0, 0, err
		}
		if strings.EqualFold(input, app.RestartToken) {
			return 0, app.FormRestartRequested, nil
		}
		if strings.EqualFold(input, app.QuitToken) {
			return 0, app.FormAborted, nil
		}
		if verr := app.ValidateField(app.FieldPurchaseID, input); verr != nil {
			a.ui.Sayf("%s Please try again.", sentence(verr.Reason))
			continue
		}
		id, _ := strconv.ParseInt(input, 10, 64)
		taken, err := a.resolver.PurchaseIDTaken(ctx, id)
		if err != nil {
			a.ui.Sayf("The store could not be reached. Transaction abandoned.")
			return 0, app.FormAborted, nil
		}
		if taken {
			a.ui.Sayf("Purchase ID %d is already taken. Please try again.", id)
			continue
		}
		return id, app.CollectingPurchaseID, nil
	}
}

// sentence upper-cases the first letter and makes sure the reason reads as a
// full sentence in the prompt flow.
func sentence(reason string) string {
	s := capitalized(reason)
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
