package models

import "time"

// Transaction is a single ingested sales record. Rows are created only in
// bulk through CSV uploads and are never updated or deleted afterwards.
type Transaction struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Date         string    `json:"date"` // canonical YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at"`
	UploadedBy   string    `json:"uploaded_by"`
}

// SalesSummary is an aggregate view over transactions. Monetary fields are
// rounded to two decimals at the output boundary only.
type SalesSummary struct {
	TotalSales        float64 `json:"totalSales"`
	TotalTransactions int     `json:"totalTransactions"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	Message           string  `json:"message,omitempty"`
}

// CustomerTotal is one row of the top-customers ranking.
type CustomerTotal struct {
	CustomerName string  `json:"customer_name"`
	TotalSales   float64 `json:"total_sales"`
}
