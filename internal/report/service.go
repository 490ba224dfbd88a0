package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

// CombinedPerPage is the listing page size used by the combined view.
const CombinedPerPage = transaction.DefaultPerPage

type Service struct {
	transactions *transaction.Service
}

func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

func (s *Service) Statistics(ctx context.Context, month string) (*Statistics, error) {
	txs, err := s.transactions.InMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("loading month: %w", err)
	}

	stats := Summarize(txs)

	return &stats, nil
}

func (s *Service) BarChart(ctx context.Context, month string) ([]BarChartEntry, error) {
	txs, err := s.transactions.InMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("loading month: %w", err)
	}

	return Histogram(txs), nil
}

func (s *Service) PieChart(ctx context.Context, month string) ([]PieChartEntry, error) {
	txs, err := s.transactions.InMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("loading month: %w", err)
	}

	return CategoryBreakdown(txs), nil
}

type Combined struct {
	Transactions *transaction.ListResult
	Statistics   *Statistics
	BarChart     []BarChartEntry
	PieChart     []PieChartEntry
}

// Combined runs the listing and the three month reports concurrently. The
// first failure cancels the rest and no partial result is returned.
func (s *Service) Combined(ctx context.Context, month string) (*Combined, error) {
	var out Combined

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.transactions.List(ctx, transaction.ListParams{Month: month, Page: 1, PerPage: CombinedPerPage})
		if err != nil {
			return fmt.Errorf("listing transactions: %w", err)
		}

		out.Transactions = list

		return nil
	})

	g.Go(func() error {
		stats, err := s.Statistics(ctx, month)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}

		out.Statistics = stats

		return nil
	})

	g.Go(func() error {
		bars, err := s.BarChart(ctx, month)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}

		out.BarChart = bars

		return nil
	})

	g.Go(func() error {
		pie, err := s.PieChart(ctx, month)
		if err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}

		out.PieChart = pie

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &out, nil
}
