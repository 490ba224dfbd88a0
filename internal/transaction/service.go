package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// InsertTransactions stores txs in order and sets Seq on each.
	InsertTransactions(ctx context.Context, txs []*Transaction) error
	CountTransactions(ctx context.Context, where Predicate) (int64, error)
	// FindTransactions returns matches in insertion order. A zero Limit means no limit.
	FindTransactions(ctx context.Context, where Predicate, w Window) ([]*Transaction, error)
	Ping(ctx context.Context) error
}

// Window is an offset/limit slice of a result set.
type Window struct {
	Offset int
	Limit  int
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ID          int64
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	DateOfSale  time.Time
	Sold        bool
}

type ListParams struct {
	Month   string
	Search  string
	Page    int
	PerPage int
}

// Normalize clamps Page to at least 1 and PerPage to [1, MaxPerPage],
// substituting DefaultPerPage for non-positive sizes.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}

	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}

	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

func (p ListParams) Window() Window {
	return Window{Offset: (p.Page - 1) * p.PerPage, Limit: p.PerPage}
}

type ListResult struct {
	Total        int64
	Page         int
	PerPage      int
	Transactions []*Transaction
}

// TotalPages is the number of pages needed to cover Total at PerPage.
func (r *ListResult) TotalPages() int {
	if r.PerPage < 1 {
		return 0
	}

	return int((r.Total + int64(r.PerPage) - 1) / int64(r.PerPage))
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Normalize()
	where := ListFilter(params.Month, params.Search)

	total, err := s.repo.CountTransactions(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}

	txs, err := s.repo.FindTransactions(ctx, where, params.Window())
	if err != nil {
		return nil, fmt.Errorf("finding transactions: %w", err)
	}

	return &ListResult{
		Total:        total,
		Page:         params.Page,
		PerPage:      params.PerPage,
		Transactions: txs,
	}, nil
}

// InMonth returns every record sold during the calendar month named by selector.
func (s *Service) InMonth(ctx context.Context, selector string) ([]*Transaction, error) {
	month, err := ParseMonth(selector)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.FindTransactions(ctx, InMonth(month), Window{})
	if err != nil {
		return nil, fmt.Errorf("finding transactions for %s: %w", month, err)
	}

	return txs, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.CountTransactions(ctx, All())
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

type SeedOptions struct {
	// SkipIfPopulated turns seeding into a no-op when any record exists.
	SkipIfPopulated bool
}

type SeedResult struct {
	ImportID uuid.UUID
	Inserted int
	Existing int64
	Skipped  bool
}

// Seed bulk-inserts params as one import. Without SkipIfPopulated a second
// call appends another full copy of the records.
func (s *Service) Seed(ctx context.Context, params []CreateParams, opts SeedOptions) (*SeedResult, error) {
	existing, err := s.repo.CountTransactions(ctx, All())
	if err != nil {
		return nil, fmt.Errorf("counting existing transactions: %w", err)
	}

	if existing > 0 && opts.SkipIfPopulated {
		slog.InfoContext(ctx, "store already seeded, skipping import", "existing", existing)
		return &SeedResult{Existing: existing, Skipped: true}, nil
	}

	if existing > 0 {
		slog.WarnContext(ctx, "store already seeded, appending duplicate records", "existing", existing, "incoming", len(params))
	}

	if len(params) == 0 {
		return &SeedResult{Existing: existing}, nil
	}

	importID := uuid.New()
	txs := paramsToTransactions(params, importID)

	if err := s.repo.InsertTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("inserting transactions: %w", err)
	}

	return &SeedResult{ImportID: importID, Inserted: len(txs), Existing: existing}, nil
}

func paramsToTransactions(params []CreateParams, importID uuid.UUID) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
			DateOfSale:  p.DateOfSale,
			Sold:        p.Sold,
			ImportID:    importID,
		}
	}

	return txs
}
