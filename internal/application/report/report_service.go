// Package report assembles the read-only dashboard aggregations.
package report

import (
	"context"
	"time"

	"github.com/stocktrack/backend/internal/domain/report"
	"github.com/stocktrack/backend/internal/domain/shared"
)

const dateLayout = "2006-01-02"

// topSellingLimit caps the top-seller ranking
const topSellingLimit = 10

// WindowQuery carries the optional date-range parameters shared by the
// report endpoints. Total bypasses the date filter entirely.
type WindowQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Total     bool   `form:"total"`
	Monthly   bool   `form:"monthly"`
}

// ToWindow parses the query into a domain window. Bare dates are inclusive
// on both ends; a malformed date is an input error.
func (q WindowQuery) ToWindow() (report.Window, error) {
	if q.Total {
		return report.All(), nil
	}

	var window report.Window
	if q.StartDate != "" {
		start, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return report.Window{}, shared.NewDomainError("INVALID_DATE", "start_date must be YYYY-MM-DD")
		}
		window.Start = &start
	}
	if q.EndDate != "" {
		end, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return report.Window{}, shared.NewDomainError("INVALID_DATE", "end_date must be YYYY-MM-DD")
		}
		window.End = &end
	}
	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return report.Window{}, shared.NewDomainError("INVALID_DATE", "end_date is before start_date")
	}
	return window, nil
}

// ReportService serves the dashboard aggregations
type ReportService struct {
	repo report.Repository
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository) *ReportService {
	return &ReportService{repo: repo}
}

// Summary returns entity head-counts
func (s *ReportService) Summary(ctx context.Context) (*report.Summary, error) {
	return s.repo.Summary(ctx)
}

// TopSelling returns the ten best selling items inside the window
func (s *ReportService) TopSelling(ctx context.Context, query WindowQuery) ([]report.TopSellingItem, error) {
	window, err := query.ToWindow()
	if err != nil {
		return nil, err
	}
	items, err := s.repo.TopSelling(ctx, window, topSellingLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []report.TopSellingItem{}
	}
	return items, nil
}

// SalesByShop ranks shops by revenue, optionally bucketed by calendar month
func (s *ReportService) SalesByShop(ctx context.Context, query WindowQuery) ([]report.ShopSales, error) {
	window, err := query.ToWindow()
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.SalesByShop(ctx, window, query.Monthly)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []report.ShopSales{}
	}
	return sales, nil
}

// PurchaseSummary totals revenue and sold quantity inside the window
func (s *ReportService) PurchaseSummary(ctx context.Context, query WindowQuery) (*report.PurchaseSummary, error) {
	window, err := query.ToWindow()
	if err != nil {
		return nil, err
	}
	return s.repo.PurchaseSummary(ctx, window)
}
