package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

// MaxSafeInteger is the largest integer a JSON number carries exactly. It is
// the upper bound of the open-ended top price band.
const MaxSafeInteger int64 = 1<<53 - 1

type Statistics struct {
	TotalSaleAmount   float64
	TotalSoldItems    int
	TotalNotSoldItems int
}

// Band is a price range labelled "Min-Max".
type Band struct {
	Min int64
	Max int64
}

// PriceBands are evaluated in this order and the histogram keeps it.
var PriceBands = []Band{
	{Min: 0, Max: 100},
	{Min: 101, Max: 200},
	{Min: 201, Max: 300},
	{Min: 301, Max: 400},
	{Min: 401, Max: 500},
	{Min: 501, Max: 600},
	{Min: 601, Max: 700},
	{Min: 701, Max: 800},
	{Min: 801, Max: 900},
	{Min: 901, Max: MaxSafeInteger},
}

func (b Band) Label() string {
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// Contains reports whether price falls in the band. Bands other than the
// first start just above the previous band's Max, so fractional prices
// such as 100.5 are not lost between "0-100" and "101-200".
func (b Band) Contains(price float64) bool {
	if b.Min == 0 {
		return price >= 0 && price <= float64(b.Max)
	}

	return price > float64(b.Min-1) && price <= float64(b.Max)
}

type BarChartEntry struct {
	PriceRange string
	Count      int
}

type PieChartEntry struct {
	Category string
	Count    int
}

// Summarize folds txs into the sale total and sold/unsold counts. Prices are
// summed as decimals.
func Summarize(txs []*transaction.Transaction) Statistics {
	var stats Statistics

	total := decimal.Zero

	for _, tx := range txs {
		total = total.Add(decimal.NewFromFloat(tx.Price))

		if tx.Sold {
			stats.TotalSoldItems++
		} else {
			stats.TotalNotSoldItems++
		}
	}

	stats.TotalSaleAmount = total.InexactFloat64()

	return stats
}

// Histogram counts txs per price band. Every record is tested against every
// band.
func Histogram(txs []*transaction.Transaction) []BarChartEntry {
	counts := make([]int, len(PriceBands))

	for _, tx := range txs {
		for i, band := range PriceBands {
			if band.Contains(tx.Price) {
				counts[i]++
			}
		}
	}

	entries := make([]BarChartEntry, len(PriceBands))
	for i, band := range PriceBands {
		entries[i] = BarChartEntry{PriceRange: band.Label(), Count: counts[i]}
	}

	return entries
}

// CategoryBreakdown counts txs per category, in first-seen order.
func CategoryBreakdown(txs []*transaction.Transaction) []PieChartEntry {
	index := make(map[string]int)
	entries := make([]PieChartEntry, 0)

	for _, tx := range txs {
		i, seen := index[tx.Category]
		if !seen {
			i = len(entries)
			index[tx.Category] = i
			entries = append(entries, PieChartEntry{Category: tx.Category})
		}

		entries[i].Count++
	}

	return entries
}
