package domain

import "time"

// DateWindow is one bounded sub-range of a requested date interval,
// respecting the upstream's maximum queryable span. Start <= End always.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// EventDetail carries the originating record's display metadata through the
// chart pipeline so tooltips can recover it per point. Listings populate
// Title/Quantity/UnitPrice; payouts populate Title (the payout id) and Amount.
type EventDetail struct {
	Title     string
	Quantity  int
	UnitPrice float64
	Amount    float64
}

// ValueEvent is a normalized chart event. Amount is the per-event incremental
// contribution, not yet accumulated.
type ValueEvent struct {
	Timestamp time.Time
	Amount    float64
	Detail    EventDetail
}

// CumulativeSeries is a running-total series: Labels are day-snapped
// timestamps sorted ascending, Values[i] is the running sum after event i and
// Details[i] the event's metadata. All three slices share one length.
type CumulativeSeries struct {
	Labels  []string
	Values  []float64
	Details []EventDetail
}

func (s CumulativeSeries) Len() int { return len(s.Labels) }

// ChartPoint is one position on the shared axis. Y is nil when the owning
// series has no event at that label.
type ChartPoint struct {
	X      string
	Y      *float64
	Detail *EventDetail
}

type ChartDataset struct {
	Label  string
	Color  string
	Points []ChartPoint
}

// AlignedChartSeries holds two datasets merged onto one shared, sorted label
// axis; both datasets have exactly one point per axis label.
type AlignedChartSeries struct {
	Labels   []string
	Listings ChartDataset
	Payouts  ChartDataset
}
