package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/salesdash/internal/encoding"
	"github.com/MrJamesThe3rd/salesdash/internal/importer/seedjson"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

type Options struct {
	SeedURL         string
	Timeout         time.Duration
	SkipIfPopulated bool
}

// Service fetches the remote seed payload and loads it into the store.
type Service struct {
	transactions *transaction.Service
	client       *http.Client
	parser       Importer
	opts         Options
}

func NewService(txService *transaction.Service, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Service{
		transactions: txService,
		client:       &http.Client{Timeout: opts.Timeout},
		parser:       seedjson.New(),
		opts:         opts,
	}
}

// Initialize fetches the seed payload and inserts every record in it.
func (s *Service) Initialize(ctx context.Context) (*transaction.SeedResult, error) {
	params, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.transactions.Seed(ctx, params, transaction.SeedOptions{
		SkipIfPopulated: s.opts.SkipIfPopulated,
	})
	if err != nil {
		return nil, fmt.Errorf("seeding store: %w", err)
	}

	slog.InfoContext(ctx, "seed import finished",
		"import_id", result.ImportID,
		"inserted", result.Inserted,
		"existing", result.Existing,
		"skipped", result.Skipped,
	)

	return result, nil
}

// Fetch downloads and decodes the seed payload without storing it.
func (s *Service) Fetch(ctx context.Context) ([]transaction.CreateParams, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.SeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, s.opts.SeedURL)
	}

	body, err := encoding.NewUTF8Reader(resp.Body, encoding.CharsetFromContentType(resp.Header.Get("Content-Type")))
	if err != nil {
		return nil, fmt.Errorf("detecting seed encoding: %w", err)
	}

	params, err := s.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	return params, nil
}
