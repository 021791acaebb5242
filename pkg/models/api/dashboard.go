package api

import "time"

type Account struct {
	Name    string `json:"name"`
	Loading bool   `json:"loading"`
	Fetched bool   `json:"fetched"`
	Error   string `json:"error,omitempty"`
}

type ListingRecord struct {
	ItemID    string    `json:"item_id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
}

type ListingRecordSet struct {
	Account      string          `json:"account"`
	Records      []ListingRecord `json:"records"`
	TotalEntries int             `json:"total_entries"`
	FetchedAt    time.Time       `json:"fetched_at"`
}

type PayoutRecord struct {
	PayoutID         string    `json:"payout_id"`
	Status           string    `json:"status"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Date             time.Time `json:"date"`
	TransactionCount int       `json:"transaction_count"`
}

type PayoutRecordSet struct {
	Account   string         `json:"account"`
	Records   []PayoutRecord `json:"records"`
	Total     int            `json:"total"`
	FetchedAt time.Time      `json:"fetched_at"`
}

type EventDetail struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

type ChartPoint struct {
	X      string       `json:"x"`
	Y      *float64     `json:"y"`
	Detail *EventDetail `json:"detail,omitempty"`
}

type ChartDataset struct {
	Label  string       `json:"label"`
	Color  string       `json:"color"`
	Points []ChartPoint `json:"data"`
}

type ChartSeries struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type EndpointStats struct {
	Endpoint     string    `json:"endpoint"`
	Calls        int64     `json:"calls"`
	LastCalledAt time.Time `json:"last_called_at"`
}
