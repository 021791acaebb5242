package chart

import (
	"sort"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
)

const (
	listingsDatasetLabel = "Total Listing Value"
	payoutsDatasetLabel  = "Total Payout Value"
)

// Align merges the listing and payout series onto one shared label axis: the
// deduplicated union of both series' labels, sorted by date. Labels must be
// day-layout (YYYY-MM-DD) strings, as BuildListingSeries and BuildPayoutSeries
// emit; the layout is fixed-width, so lexicographic order is date order. Each
// dataset gets exactly one point per axis label; a label owned by only one
// series yields a nil-valued point in the other. Values are never
// forward-filled across series. Colors come from the caller's palette at
// alignment time, so a theme switch only re-aligns and never re-fetches.
func Align(listings, payouts domain.CumulativeSeries, palette Palette) domain.AlignedChartSeries {
	seen := make(map[string]struct{}, listings.Len()+payouts.Len())
	axis := make([]string, 0, listings.Len()+payouts.Len())
	for _, label := range append(append([]string{}, listings.Labels...), payouts.Labels...) {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		axis = append(axis, label)
	}

	sort.Strings(axis)

	return domain.AlignedChartSeries{
		Labels:   axis,
		Listings: buildDataset(axis, listings, listingsDatasetLabel, palette.Listings),
		Payouts:  buildDataset(axis, payouts, payoutsDatasetLabel, palette.Payouts),
	}
}

func buildDataset(axis []string, s domain.CumulativeSeries, label, color string) domain.ChartDataset {
	// Multiple same-day events collapse to the day's final running total.
	last := make(map[string]int, s.Len())
	for i, l := range s.Labels {
		last[l] = i
	}

	points := make([]domain.ChartPoint, 0, len(axis))
	for _, x := range axis {
		point := domain.ChartPoint{X: x}
		if i, ok := last[x]; ok {
			value := s.Values[i]
			detail := s.Details[i]
			point.Y = &value
			point.Detail = &detail
		}
		points = append(points, point)
	}

	return domain.ChartDataset{
		Label:  label,
		Color:  color,
		Points: points,
	}
}
