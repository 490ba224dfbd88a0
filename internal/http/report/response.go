package report

import (
	txHttp "github.com/MrJamesThe3rd/salesdash/internal/http/transaction"
	"github.com/MrJamesThe3rd/salesdash/internal/report"
)

type statisticsResponse struct {
	TotalSaleAmount   float64 `json:"total_sale_amount"`
	TotalSoldItems    int     `json:"total_sold_items"`
	TotalNotSoldItems int     `json:"total_not_sold_items"`
}

type barChartEntryResponse struct {
	PriceRange string `json:"price_range"`
	Count      int    `json:"count"`
}

type pieChartEntryResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type combinedResponse struct {
	Transactions txHttp.ListResponse     `json:"transactions"`
	Statistics   statisticsResponse      `json:"statistics"`
	BarChart     []barChartEntryResponse `json:"barChart"`
	PieChart     []pieChartEntryResponse `json:"pieChart"`
}

func toStatisticsResponse(s *report.Statistics) statisticsResponse {
	return statisticsResponse{
		TotalSaleAmount:   s.TotalSaleAmount,
		TotalSoldItems:    s.TotalSoldItems,
		TotalNotSoldItems: s.TotalNotSoldItems,
	}
}

func toBarChartResponse(entries []report.BarChartEntry) []barChartEntryResponse {
	resp := make([]barChartEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = barChartEntryResponse{PriceRange: e.PriceRange, Count: e.Count}
	}

	return resp
}

func toPieChartResponse(entries []report.PieChartEntry) []pieChartEntryResponse {
	resp := make([]pieChartEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = pieChartEntryResponse{Category: e.Category, Count: e.Count}
	}

	return resp
}
