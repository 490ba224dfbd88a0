package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	salesHttp "github.com/MrJamesThe3rd/salesdash/internal/http"
	"github.com/MrJamesThe3rd/salesdash/internal/http/health"
	"github.com/MrJamesThe3rd/salesdash/internal/http/importseed"
	reportHandler "github.com/MrJamesThe3rd/salesdash/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/salesdash/internal/http/transaction"
	"github.com/MrJamesThe3rd/salesdash/internal/importer"
	"github.com/MrJamesThe3rd/salesdash/internal/report"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction/docstore"
)

const seedPayload = `[
  {"id": 1, "title": "Fjallraven Backpack", "description": "Fits 15 inch laptops", "price": 150, "category": "A", "image": "a.jpg", "dateOfSale": "2024-03-05T20:29:54+05:30", "sold": true},
  {"id": 2, "title": "Slim Fit T-Shirt", "description": "Lightweight casual wear", "price": 150, "category": "B", "image": "b.jpg", "dateOfSale": "2024-03-20T10:00:00Z", "sold": false},
  {"id": 3, "title": "Cotton Jacket", "description": "Great outerwear", "price": 55.99, "category": "B", "image": "c.jpg", "dateOfSale": "2024-04-01T08:00:00Z", "sold": true},
  {"id": 4, "title": "Gold Ring", "description": "Solid gold petite micropave", "price": 1168, "category": "jewelery", "image": "d.jpg", "dateOfSale": "2023-03-11T12:00:00Z", "sold": false}
]`

type listBody struct {
	Total        int64            `json:"total"`
	Transactions []map[string]any `json:"transactions"`
}

type statisticsBody struct {
	TotalSaleAmount   float64 `json:"total_sale_amount"`
	TotalSoldItems    int     `json:"total_sold_items"`
	TotalNotSoldItems int     `json:"total_not_sold_items"`
}

type entryBody struct {
	PriceRange string `json:"price_range,omitempty"`
	Category   string `json:"category,omitempty"`
	Count      int    `json:"count"`
}

type combinedBody struct {
	Transactions listBody       `json:"transactions"`
	Statistics   statisticsBody `json:"statistics"`
	BarChart     []entryBody    `json:"barChart"`
	PieChart     []entryBody    `json:"pieChart"`
}

func newRouter(t *testing.T, repo transaction.Repository, seedURL string) http.Handler {
	t.Helper()

	txSvc := transaction.NewService(repo)
	importSvc := importer.NewService(txSvc, importer.Options{SeedURL: seedURL})

	return salesHttp.New(
		salesHttp.Options{AllowedOrigins: []string{"*"}},
		health.NewHandler(txSvc),
		importseed.NewHandler(importSvc),
		txHandler.NewHandler(txSvc),
		reportHandler.NewHandler(report.NewService(txSvc)),
	)
}

func newBadgerRepo(t *testing.T) transaction.Repository {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)

	s, err := docstore.New(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = db.Close()
	})

	return s
}

func newSeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func seededRouter(t *testing.T) http.Handler {
	t.Helper()

	router := newRouter(t, newBadgerRepo(t), newSeedServer(t, http.StatusOK, seedPayload).URL)

	rec := get(t, router, "/initialize_database")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Database initialized with seed data", rec.Body.String())

	return router
}

func TestInitializeDatabase(t *testing.T) {
	t.Run("TwiceDoublesTheTotal", func(t *testing.T) {
		router := seededRouter(t)

		first := decode[listBody](t, get(t, router, "/list_transactions"))
		assert.Equal(t, int64(4), first.Total)

		rec := get(t, router, "/initialize_database")
		require.Equal(t, http.StatusOK, rec.Code)

		second := decode[listBody](t, get(t, router, "/list_transactions"))
		assert.Equal(t, 2*first.Total, second.Total)
	})

	t.Run("SeedSourceFailure", func(t *testing.T) {
		router := newRouter(t, newBadgerRepo(t), newSeedServer(t, http.StatusBadGateway, "").URL)

		rec := get(t, router, "/initialize_database")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error initializing database\n", rec.Body.String())
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		router := newRouter(t, newBadgerRepo(t), newSeedServer(t, http.StatusOK, `{"not": "an array"}`).URL)

		rec := get(t, router, "/initialize_database")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("SkipIfPopulated", func(t *testing.T) {
		repo := newBadgerRepo(t)
		txSvc := transaction.NewService(repo)
		srv := newSeedServer(t, http.StatusOK, seedPayload)
		importSvc := importer.NewService(txSvc, importer.Options{SeedURL: srv.URL, SkipIfPopulated: true})
		router := salesHttp.New(
			salesHttp.Options{AllowedOrigins: []string{"*"}},
			health.NewHandler(txSvc),
			importseed.NewHandler(importSvc),
			txHandler.NewHandler(txSvc),
			reportHandler.NewHandler(report.NewService(txSvc)),
		)

		require.Equal(t, "Database initialized with seed data", get(t, router, "/initialize_database").Body.String())
		assert.Equal(t, "Database already initialized, seed skipped", get(t, router, "/initialize_database").Body.String())

		total, err := txSvc.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})
}

func TestListTransactions(t *testing.T) {
	router := seededRouter(t)

	tests := []struct {
		name      string
		target    string
		wantTotal int64
		wantIDs   []float64
	}{
		{name: "Unfiltered", target: "/list_transactions", wantTotal: 4, wantIDs: []float64{1, 2, 3, 4}},
		{name: "MonthPattern", target: "/list_transactions?month=2024-03", wantTotal: 2, wantIDs: []float64{1, 2}},
		{name: "MonthOnlyPattern", target: "/list_transactions?month=-03-", wantTotal: 3, wantIDs: []float64{1, 2, 4}},
		{name: "SearchTitleCaseInsensitive", target: "/list_transactions?search_text=JACKET", wantTotal: 1, wantIDs: []float64{3}},
		{name: "SearchDescription", target: "/list_transactions?search_text=outerwear", wantTotal: 1, wantIDs: []float64{3}},
		{name: "SearchPrice", target: "/list_transactions?search_text=55.99", wantTotal: 1, wantIDs: []float64{3}},
		{name: "MonthAndSearch", target: "/list_transactions?month=2024-03&search_text=150", wantTotal: 2, wantIDs: []float64{1, 2}},
		{name: "SecondPage", target: "/list_transactions?page=2&per_page=3", wantTotal: 4, wantIDs: []float64{4}},
		{name: "PageZeroClamps", target: "/list_transactions?page=0&per_page=2", wantTotal: 4, wantIDs: []float64{1, 2}},
		{name: "NonNumericPaging", target: "/list_transactions?page=x&per_page=y", wantTotal: 4, wantIDs: []float64{1, 2, 3, 4}},
		{name: "PastTheEnd", target: "/list_transactions?page=9", wantTotal: 4, wantIDs: []float64{}},
		{name: "RegexMetacharactersAreLiteral", target: "/list_transactions?search_text=.*", wantTotal: 0, wantIDs: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := decode[listBody](t, get(t, router, tt.target))

			assert.Equal(t, tt.wantTotal, body.Total)

			ids := make([]float64, len(body.Transactions))
			for i, tx := range body.Transactions {
				ids[i] = tx["id"].(float64)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("RecordShape", func(t *testing.T) {
		body := decode[listBody](t, get(t, router, "/list_transactions?per_page=1"))
		require.Len(t, body.Transactions, 1)

		tx := body.Transactions[0]
		assert.Equal(t, "Fjallraven Backpack", tx["title"])
		assert.Equal(t, "a.jpg", tx["image"])
		assert.Equal(t, "2024-03-05T14:59:54Z", tx["dateOfSale"])
		assert.Equal(t, true, tx["sold"])
		assert.NotContains(t, tx, "ImportID")
	})
}

func TestReports(t *testing.T) {
	router := seededRouter(t)

	t.Run("Statistics", func(t *testing.T) {
		got := decode[statisticsBody](t, get(t, router, "/statistics?month=2024-03"))
		assert.Equal(t, statisticsBody{TotalSaleAmount: 300, TotalSoldItems: 1, TotalNotSoldItems: 1}, got)
	})

	t.Run("BarChart", func(t *testing.T) {
		got := decode[[]entryBody](t, get(t, router, "/bar_chart?month=2024-03"))
		require.Len(t, got, 10)
		assert.Equal(t, entryBody{PriceRange: "101-200", Count: 2}, got[1])
		assert.Equal(t, "901-9007199254740991", got[9].PriceRange)
	})

	t.Run("PieChart", func(t *testing.T) {
		got := decode[[]entryBody](t, get(t, router, "/pie_chart?month=2024-03"))
		assert.Equal(t, []entryBody{{Category: "A", Count: 1}, {Category: "B", Count: 1}}, got)
	})

	t.Run("EmptyMonth", func(t *testing.T) {
		got := decode[[]entryBody](t, get(t, router, "/pie_chart?month=1999-01"))
		assert.Empty(t, got)
	})

	t.Run("CombinedEqualsSections", func(t *testing.T) {
		got := decode[combinedBody](t, get(t, router, "/combined_data?month=2024-03"))

		assert.Equal(t, decode[listBody](t, get(t, router, "/list_transactions?month=2024-03")), got.Transactions)
		assert.Equal(t, decode[statisticsBody](t, get(t, router, "/statistics?month=2024-03")), got.Statistics)
		assert.Equal(t, decode[[]entryBody](t, get(t, router, "/bar_chart?month=2024-03")), got.BarChart)
		assert.Equal(t, decode[[]entryBody](t, get(t, router, "/pie_chart?month=2024-03")), got.PieChart)
	})

	t.Run("MalformedMonth", func(t *testing.T) {
		tests := []struct {
			target string
			want   string
		}{
			{target: "/statistics?month=someday", want: "Error calculating statistics\n"},
			{target: "/bar_chart", want: "Error generating bar chart data\n"},
			{target: "/pie_chart?month=13-2024", want: "Error generating pie chart data\n"},
			{target: "/combined_data?month=nope", want: "Error fetching combined data\n"},
		}

		for _, tt := range tests {
			t.Run(tt.target, func(t *testing.T) {
				rec := get(t, router, tt.target)
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Equal(t, tt.want, rec.Body.String())
			})
		}
	})
}

func TestStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	storeErr := errors.New("connection refused")
	repo.EXPECT().CountTransactions(gomock.Any(), gomock.Any()).Return(int64(0), storeErr).AnyTimes()
	repo.EXPECT().FindTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr).AnyTimes()
	repo.EXPECT().Ping(gomock.Any()).Return(storeErr)

	router := newRouter(t, repo, "http://127.0.0.1:0")

	tests := []struct {
		target   string
		wantCode int
		wantBody string
	}{
		{target: "/list_transactions", wantCode: http.StatusInternalServerError, wantBody: "Error listing transactions\n"},
		{target: "/statistics?month=2024-03", wantCode: http.StatusInternalServerError, wantBody: "Error calculating statistics\n"},
		{target: "/combined_data?month=2024-03", wantCode: http.StatusInternalServerError, wantBody: "Error fetching combined data\n"},
		{target: "/healthz", wantCode: http.StatusServiceUnavailable, wantBody: "store unavailable\n"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, router, tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHealthz(t *testing.T) {
	router := newRouter(t, newBadgerRepo(t), "http://127.0.0.1:0")

	rec := get(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCORS(t *testing.T) {
	router := newRouter(t, newBadgerRepo(t), "http://127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://dashboard.example")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
