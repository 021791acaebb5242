package domain

import "time"

type ListingRecord struct {
	ItemID    string
	Title     string
	Quantity  int
	UnitPrice float64
	Currency  string
	Status    string
	StartTime time.Time
}

type PayoutRecord struct {
	PayoutID         string
	Status           string
	Amount           float64
	Currency         string
	Date             time.Time
	TransactionCount int
}

// ListingRecordSet is the concatenation of every listing recovered across all
// pages of all windows of one fetch cycle. TotalEntries is the sum of the
// per-window totals reported by the upstream, not any single page's total.
type ListingRecordSet struct {
	Account      string
	Records      []ListingRecord
	TotalEntries int
	FetchedAt    time.Time
}

type PayoutRecordSet struct {
	Account   string
	Records   []PayoutRecord
	Total     int
	FetchedAt time.Time
}

// AccountState is one account's slot in the fanout: its in-flight flag, the
// last collected data and the last error, if any. A failed cycle leaves empty
// record sets in place so readers can render a "no data" view.
type AccountState struct {
	Loading  bool
	Listings *ListingRecordSet
	Payouts  *PayoutRecordSet
	Err      string
	From     time.Time
	To       time.Time
}

func (s AccountState) Fetched() bool {
	return s.Listings != nil && s.Payouts != nil
}
