package upstream

type PayoutAmount struct {
	// Value arrives as a decimal string, e.g. "123.45".
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type PayoutInstrument struct {
	InstrumentType        string `json:"instrumentType"`
	Nickname              string `json:"nickname"`
	AccountLastFourDigits string `json:"accountLastFourDigits"`
}

type Payout struct {
	PayoutID                string           `json:"payoutId"`
	PayoutStatus            string           `json:"payoutStatus"`
	PayoutStatusDescription string           `json:"payoutStatusDescription"`
	Amount                  PayoutAmount     `json:"amount"`
	PayoutDate              string           `json:"payoutDate"`
	LastAttemptedPayoutDate string           `json:"lastAttemptedPayoutDate"`
	TransactionCount        int              `json:"transactionCount"`
	PayoutInstrument        PayoutInstrument `json:"payoutInstrument"`
}

type PayoutsPage struct {
	Href    string   `json:"href"`
	Next    string   `json:"next"`
	Prev    string   `json:"prev"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
	Payouts []Payout `json:"payouts"`
	Total   int      `json:"total"`
}

type PayoutsEnvelope struct {
	User    string      `json:"user"`
	Payouts PayoutsPage `json:"payouts"`
}
