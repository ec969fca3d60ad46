package app

import (
	"context"

	"retail/internal/domain"
)

// ReportService runs the read-only analytics queries the menus dispatch to.
// Each report is one parameterized aggregation query; the service only adds
// the store-unavailable mapping.
type ReportService struct {
	reports domain.ReportStore
}

// NewReportService creates a ReportService over the given report store.
func NewReportService(reports domain.ReportStore) *ReportService {
	return &ReportService{reports: reports}
}

// StorePerformance returns per-location transaction counts, revenue, and
// average foot traffic. Administrator-only.
func (s *ReportService) StorePerformance(ctx context.Context) ([]domain.StorePerformanceRow, error) {
	rows, err := s.reports.StorePerformance(ctx)
	if err != nil {
		return nil, unavailable("store performance", err)
	}
	return rows, nil
}

// StoreSalesStats returns the per-store sales rollup. Administrator-only.
func (s *ReportService) StoreSalesStats(ctx context.Context) ([]domain.StoreSalesRow, error) {
	rows, err := s.reports.StoreSalesStats(ctx)
	if err != nil {
		return nil, unavailable("store sales stats", err)
	}
	return rows, nil
}

// PaymentMethodUsage returns payment method counts per store location.
func (s *ReportService) PaymentMethodUsage(ctx context.Context) ([]domain.PaymentMethodRow, error) {
	rows, err := s.reports.PaymentMethodUsage(ctx)
	if err != nil {
		return nil, unavailable("payment method usage", err)
	}
	return rows, nil
}

// AgeGroupStats returns purchase statistics bracketed by customer age.
func (s *ReportService) AgeGroupStats(ctx context.Context) ([]domain.AgeGroupRow, error) {
	rows, err := s.reports.AgeGroupStats(ctx)
	if err != nil {
		return nil, unavailable("age group stats", err)
	}
	return rows, nil
}

// GenderStats returns purchase statistics grouped by reported gender.
func (s *ReportService) GenderStats(ctx context.Context) ([]domain.GenderRow, error) {
	rows, err := s.reports.GenderStats(ctx)
	if err != nil {
		return nil, unavailable("gender stats", err)
	}
	return rows, nil
}
