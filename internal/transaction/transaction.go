package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidMonth = errors.New("invalid month")

// Transaction represents a single sale record loaded from the seed source.
type Transaction struct {
	ID          int64 // Supplied by the seed payload, not unique
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	DateOfSale  time.Time
	Sold        bool

	// Set by the store on insert.
	Seq      int64
	ImportID uuid.UUID
}
