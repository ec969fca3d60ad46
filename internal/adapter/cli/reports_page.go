package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"retail/internal/domain"
)

const pageSize = 10

// renderPaged prints rows ten at a time. 'n' advances; anything else stops.
func (a *App) renderPaged(title string, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		a.ui.Sayf("No data available.")
		return nil
	}

	totalPages := (len(rows) + pageSize - 1) / pageSize
	for page := 0; page < totalPages; page++ {
		a.ui.SectionHeader(title)
		start := page * pageSize
		end := start + pageSize
		if end > len(rows) {
			end = len(rows)
		}

		table := tablewriter.NewWriter(a.ui.out)
		table.SetHeader(headers)
		table.AppendBulk(rows[start:end])
		table.Render()
		a.ui.Sayf("\nPage %d of %d", page+1, totalPages)

		if page == totalPages-1 {
			break
		}
		next, err := a.ui.ReadLine("\nPress 'n' to view next page, or any other key to exit: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(next, "n") {
			break
		}
	}
	return nil
}

func (a *App) reportFailed(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		a.ui.Sayf("The store could not be reached. Please try again later.")
		return nil
	}
	return err
}

func (a *App) storePerformancePage(ctx context.Context) error {
	rows, err := a.reports.StorePerformance(ctx)
	if err != nil {
		return a.reportFailed(err)
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			fmt.Sprintf("%d", r.StoreID),
			r.StoreLocation,
			fmt.Sprintf("%d", r.TotalTransactions),
			fmt.Sprintf("%.2f", r.TotalRevenue),
			fmt.Sprintf("%.1f", r.AvgFootTraffic),
		})
	}
	return a.renderPaged("Store Performance Page",
		[]string{"Store ID", "Location", "Total Transactions", "Total Revenue ($)", "Avg Foot Traffic"}, table)
}

func (a *App) storeSalesPage(ctx context.Context) error {
	rows, err := a.reports.StoreSalesStats(ctx)
	if err != nil {
		return a.reportFailed(err)
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			fmt.Sprintf("%d", r.StoreID),
			fmt.Sprintf("%.2f", r.TotalSales),
			fmt.Sprintf("%d", r.NumPurchases),
			fmt.Sprintf("%.1f", r.AvgDiscount),
			fmt.Sprintf("%.2f", r.MinPrice),
			fmt.Sprintf("%.2f", r.MaxPrice),
		})
	}
	return a.renderPaged("Store Sales Statistics",
		[]string{"Store ID", "Total Sales ($)", "Num Purchases", "Avg Discount (%)", "Min Price ($)", "Max Price ($)"}, table)
}

func (a *App) paymentMethodPage(ctx context.Context) error {
	rows, err := a.reports.PaymentMethodUsage(ctx)
	if err != nil {
		return a.reportFailed(err)
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			fmt.Sprintf("%d", r.StoreID),
			r.StoreLocation,
			r.PaymentMethod,
			fmt.Sprintf("%d", r.UsageCount),
		})
	}
	return a.renderPaged("Most Popular Payment Methods Per Store",
		[]string{"Store ID", "Store Location", "Payment Method", "Usage Count"}, table)
}

func (a *App) ageStatsPage(ctx context.Context) error {
	rows, err := a.reports.AgeGroupStats(ctx)
	if err != nil {
		return a.reportFailed(err)
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.AgeGroup,
			fmt.Sprintf("%d", r.TotalPurchases),
			fmt.Sprintf("%.2f", r.AvgSpent),
		})
	}
	return a.renderPaged("Retail Statistics by Age Group",
		[]string{"Age Group", "Total Purchases", "Avg Spent Per Purchase ($)"}, table)
}

func (a *App) genderStatsPage(ctx context.Context) error {
	rows, err := a.reports.GenderStats(ctx)
	if err != nil {
		return a.reportFailed(err)
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Gender,
			fmt.Sprintf("%d", r.TotalPurchases),
			fmt.Sprintf("%.2f", r.AvgSpent),
		})
	}
	return a.renderPaged("Retail Statistics by Gender",
		[]string{"Gender", "Total Purchases", "Avg Spent Per Transaction ($)"}, table)
}

func (a *App) saleableCombosPage(ctx context.Context) error {
	combos, err := a.purchases.SaleableCombos(ctx)
	if err != nil {
		a.ui.Sayf("The store could not be reached. Please try again later.")
		return nil
	}
	table := make([][]string, 0, len(combos))
	for _, c := range combos {
		table = append(table, []string{
			fmt.Sprintf("%d", c.ProductID),
			fmt.Sprintf("%d", c.StoreID),
			c.StoreLocation,
		})
	}
	a.ui.Sayf("You are viewing possible product, store, and store location input:")
	return a.renderPaged("Available Purchases",
		[]string{"Product ID", "Store ID", "Store Location"}, table)
}
