// Package chart turns collected record sets into cumulative value series and
// aligns them onto a shared timeline for the dashboard's charting surface.
package chart

import (
	"sort"
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
)

// Labels snap to the start of day so points from both series land on the
// same grid positions.
const dayLayout = "2006-01-02"

// BuildListingSeries derives cumulative listing value over [from, to]. A
// listing's contribution is its unit price times quantity.
func BuildListingSeries(records []domain.ListingRecord, from, to time.Time) domain.CumulativeSeries {
	events := make([]domain.ValueEvent, 0, len(records))
	for _, r := range records {
		events = append(events, domain.ValueEvent{
			Timestamp: r.StartTime,
			Amount:    r.UnitPrice * float64(r.Quantity),
			Detail: domain.EventDetail{
				Title:     r.Title,
				Quantity:  r.Quantity,
				UnitPrice: r.UnitPrice,
			},
		})
	}
	return accumulate(events, from, to)
}

// BuildPayoutSeries derives cumulative payout value over [from, to].
func BuildPayoutSeries(records []domain.PayoutRecord, from, to time.Time) domain.CumulativeSeries {
	events := make([]domain.ValueEvent, 0, len(records))
	for _, r := range records {
		events = append(events, domain.ValueEvent{
			Timestamp: r.Date,
			Amount:    r.Amount,
			Detail: domain.EventDetail{
				Title:  r.PayoutID,
				Amount: r.Amount,
			},
		})
	}
	return accumulate(events, from, to)
}

// accumulate filters events to [from, to] inclusive, orders them by timestamp
// with a stable sort (same-day events keep their arrival order) and walks the
// result once, appending the post-increment running sum at every step. The
// range filter is always applied: the upstream is not trusted to respect the
// requested window exactly, and a straddling record must not corrupt the
// chart. Zero matching events yield an empty series, which is a valid "no
// data in range" state rather than an error.
func accumulate(events []domain.ValueEvent, from, to time.Time) domain.CumulativeSeries {
	filtered := make([]domain.ValueEvent, 0, len(events))
	for _, e := range events {
		if e.Timestamp.Before(from) || e.Timestamp.After(to) {
			continue
		}
		filtered = append(filtered, e)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})

	series := domain.CumulativeSeries{
		Labels:  make([]string, 0, len(filtered)),
		Values:  make([]float64, 0, len(filtered)),
		Details: make([]domain.EventDetail, 0, len(filtered)),
	}

	running := 0.0
	for _, e := range filtered {
		running += e.Amount
		series.Labels = append(series.Labels, e.Timestamp.Format(dayLayout))
		series.Values = append(series.Values, running)
		series.Details = append(series.Details, e.Detail)
	}
	return series
}
