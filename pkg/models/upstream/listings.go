package upstream

// Wire-side models for the marketplace listings endpoint. Field names follow the
// upstream payloads exactly; everything here stays transient and is mapped into
// domain records by the adapters package.

type Amount struct {
	Value      float64 `json:"Value"`
	CurrencyID string  `json:"CurrencyID"`
}

type SellingStatus struct {
	CurrentPrice  Amount `json:"CurrentPrice"`
	ListingStatus string `json:"ListingStatus"`
}

type ListingDetails struct {
	StartTime   string `json:"StartTime"`
	EndTime     string `json:"EndTime"`
	ViewItemURL string `json:"ViewItemURL"`
}

type Item struct {
	ItemID         string         `json:"ItemID"`
	Title          string         `json:"Title"`
	Quantity       int            `json:"Quantity"`
	SellingStatus  SellingStatus  `json:"SellingStatus"`
	ListingDetails ListingDetails `json:"ListingDetails"`
}

type ItemArray struct {
	Items []Item `json:"Items"`
}

type PaginationResult struct {
	TotalNumberOfPages   int `json:"TotalNumberOfPages"`
	TotalNumberOfEntries int `json:"TotalNumberOfEntries"`
}

type Listings struct {
	Timestamp               string           `json:"Timestamp"`
	Ack                     string           `json:"Ack"`
	PaginationResult        PaginationResult `json:"PaginationResult"`
	HasMoreItems            bool             `json:"HasMoreItems"`
	ItemArray               ItemArray        `json:"ItemArray"`
	ItemsPerPage            int              `json:"ItemsPerPage"`
	PageNumber              int              `json:"PageNumber"`
	ReturnedItemCountActual int              `json:"ReturnedItemCountActual"`
}

type ListingsEnvelope struct {
	User     string   `json:"user"`
	Listings Listings `json:"listings"`
}
