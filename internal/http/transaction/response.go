package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

type transactionResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	DateOfSale  time.Time `json:"dateOfSale"`
	Sold        bool      `json:"sold"`
}

// ListResponse is the listing body, shared with the combined view.
type ListResponse struct {
	Total        int64                 `json:"total"`
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Title:       tx.Title,
		Description: tx.Description,
		Price:       tx.Price,
		Category:    tx.Category,
		Image:       tx.Image,
		DateOfSale:  tx.DateOfSale.UTC(),
		Sold:        tx.Sold,
	}
}

func ToListResponse(result *transaction.ListResult) ListResponse {
	resp := ListResponse{
		Total:        result.Total,
		Transactions: make([]transactionResponse, len(result.Transactions)),
	}

	for i, tx := range result.Transactions {
		resp.Transactions[i] = toResponse(tx)
	}

	return resp
}
