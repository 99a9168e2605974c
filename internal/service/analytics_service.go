package service

import (
	"context"
	"math"

	"salestracker/internal/models"
	"salestracker/internal/repository"
)

const defaultTopCustomers = 3

const emptyStoreMessage = "No transaction data available"

// AnalyticsService computes aggregate views over the transaction store.
// All reads are pure; accumulation happens in SQL and rounding to two
// decimals happens here, once, at the output boundary.
type AnalyticsService struct {
	txRepo repository.Transactions
}

func NewAnalyticsService(txRepo repository.Transactions) *AnalyticsService {
	return &AnalyticsService{txRepo: txRepo}
}

// Summary aggregates over all transactions. An empty store is a defined
// state, reported with an informational message rather than an error.
func (s *AnalyticsService) Summary(ctx context.Context) (models.SalesSummary, error) {
	totals, err := s.txRepo.Totals(ctx)
	if err != nil {
		return models.SalesSummary{}, err
	}
	if totals.Count == 0 {
		return models.SalesSummary{Message: emptyStoreMessage}, nil
	}
	return models.SalesSummary{
		TotalSales:        round2(totals.Sum),
		TotalTransactions: totals.Count,
		AverageOrderValue: round2(totals.Avg),
	}, nil
}

// TopCustomers ranks customers by summed sales, descending. Ties order by
// customer name ascending so results are reproducible.
func (s *AnalyticsService) TopCustomers(ctx context.Context, limit int) ([]models.CustomerTotal, error) {
	if limit <= 0 {
		limit = defaultTopCustomers
	}
	rows, err := s.txRepo.TopCustomers(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalSales = round2(rows[i].TotalSales)
	}
	return rows, nil
}

// ByDateRange aggregates transactions with date in the inclusive [from, to]
// range. An empty range yields zeros, never a divide-by-zero.
func (s *AnalyticsService) ByDateRange(ctx context.Context, from, to string) (models.SalesSummary, error) {
	totals, err := s.txRepo.TotalsByDateRange(ctx, from, to)
	if err != nil {
		return models.SalesSummary{}, err
	}
	return models.SalesSummary{
		TotalSales:        round2(totals.Sum),
		TotalTransactions: totals.Count,
		AverageOrderValue: round2(totals.Avg),
	}, nil
}

// round2 rounds half away from zero to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
