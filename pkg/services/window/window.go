// Package window splits arbitrary date ranges into sub-windows that respect
// the upstream API's maximum queryable span.
package window

import (
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
)

// DefaultMaxSpanDays is the widest window the marketplace API accepts.
const DefaultMaxSpanDays = 120

// Split breaks [from, to] into consecutive windows no longer than maxDays
// each. Windows are contiguous, non-overlapping and cover the range exactly:
// each window ends at min(start + maxDays - 1ns, to) and the next one starts
// one nanosecond later. Callers must ensure from <= to; Split does not
// validate.
func Split(from, to time.Time, maxDays int) []domain.DateWindow {
	span := time.Duration(maxDays) * 24 * time.Hour

	var windows []domain.DateWindow
	start := from
	for !start.After(to) {
		end := start.Add(span - time.Nanosecond)
		if end.After(to) {
			end = to
		}
		windows = append(windows, domain.DateWindow{Start: start, End: end})
		start = end.Add(time.Nanosecond)
	}
	return windows
}
