// Package seedjson decodes the product transaction seed payload: a JSON
// array of sale records.
package seedjson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

var dateLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

type record struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	DateOfSale  string  `json:"dateOfSale"`
	Sold        bool    `json:"sold"`
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding seed payload: %w", err)
	}

	params := make([]transaction.CreateParams, 0, len(records))

	for i, rec := range records {
		date, err := parseDate(rec.DateOfSale)
		if err != nil {
			return nil, fmt.Errorf("record %d (id %d): %w", i, rec.ID, err)
		}

		params = append(params, transaction.CreateParams{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Price:       rec.Price,
			Category:    rec.Category,
			Image:       rec.Image,
			DateOfSale:  date,
			Sold:        rec.Sold,
		})
	}

	return params, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid dateOfSale %q", s)
}
