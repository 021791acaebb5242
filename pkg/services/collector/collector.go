// Package collector recovers complete per-account record sets from the
// marketplace API, which only serves bounded date windows and bounded pages.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/seller-atlas/pkg/adapters"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/models/upstream"
	"github.com/de-tools/seller-atlas/pkg/services/window"
	"github.com/rs/zerolog"
)

const (
	// Listings pages are numbered from 1 (upstream PageNumber contract),
	// payout pages from 0.
	firstListingsPage = 1
	firstPayoutsPage  = 0

	DefaultPageSize = 200
)

type MarketAPI interface {
	GetListingsPage(
		ctx context.Context,
		user string,
		window domain.DateWindow,
		pageSize, pageIdx int,
	) (*upstream.Listings, error)
	GetPayoutsPage(ctx context.Context, user string, pageSize, pageIdx int) (*upstream.PayoutsPage, error)
}

type Config struct {
	PageSize    int
	MaxSpanDays int
}

type Collector struct {
	api MarketAPI
	cfg Config
}

func New(api MarketAPI, cfg Config) *Collector {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxSpanDays <= 0 {
		cfg.MaxSpanDays = window.DefaultMaxSpanDays
	}
	return &Collector{api: api, cfg: cfg}
}

// CollectListings drains every window of [from, to] for one account and
// concatenates the results in window order. Windows are processed
// sequentially, so records from an earlier window always precede records from
// a later one regardless of response timing. The aggregate total is the sum
// of per-window totals: the upstream's total only reflects the queried window.
func (c *Collector) CollectListings(
	ctx context.Context,
	account string,
	from, to time.Time,
) (*domain.ListingRecordSet, error) {
	windows := window.Split(from, to, c.cfg.MaxSpanDays)

	set := &domain.ListingRecordSet{
		Account:   account,
		Records:   []domain.ListingRecord{},
		FetchedAt: time.Now(),
	}

	for _, w := range windows {
		records, windowTotal, err := c.drainListingsWindow(ctx, account, w)
		if err != nil {
			return nil, fmt.Errorf("collect listings for %s: %w", account, err)
		}
		set.Records = append(set.Records, records...)
		set.TotalEntries += windowTotal
	}

	zerolog.Ctx(ctx).Debug().
		Str("account", account).
		Int("windows", len(windows)).
		Int("records", len(set.Records)).
		Int("total_entries", set.TotalEntries).
		Msg("collected listings")

	return set, nil
}

// drainListingsWindow requests fixed-size pages until the upstream's explicit
// HasMoreItems flag clears or a page comes back empty, appending records in
// page-arrival order.
func (c *Collector) drainListingsWindow(
	ctx context.Context,
	account string,
	w domain.DateWindow,
) ([]domain.ListingRecord, int, error) {
	var records []domain.ListingRecord
	total := 0

	for pageIdx := firstListingsPage; ; pageIdx++ {
		page, err := c.api.GetListingsPage(ctx, account, w, c.cfg.PageSize, pageIdx)
		if err != nil {
			return nil, 0, fmt.Errorf("page %d of window %s..%s: %w",
				pageIdx, w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"), err)
		}

		for _, item := range page.ItemArray.Items {
			record, err := adapters.MapUpstreamItemToDomain(item)
			if err != nil {
				return nil, 0, err
			}
			records = append(records, record)
		}

		total = page.PaginationResult.TotalNumberOfEntries
		// An empty page ends the drain even if the upstream still
		// advertises more; a stuck HasMoreItems flag must not loop forever.
		if !page.HasMoreItems || len(page.ItemArray.Items) == 0 {
			break
		}
	}

	return records, total, nil
}

// CollectPayouts drains the payout pages for one account. The payouts
// endpoint takes no date range, so there is no windowing; callers re-filter
// by date when building series. Exhaustion follows the explicit next cursor
// first; the count-vs-pageSize heuristic only breaks ties because a last page
// can be incidentally full.
func (c *Collector) CollectPayouts(ctx context.Context, account string) (*domain.PayoutRecordSet, error) {
	set := &domain.PayoutRecordSet{
		Account:   account,
		Records:   []domain.PayoutRecord{},
		FetchedAt: time.Now(),
	}

	for pageIdx := firstPayoutsPage; ; pageIdx++ {
		page, err := c.api.GetPayoutsPage(ctx, account, c.cfg.PageSize, pageIdx)
		if err != nil {
			return nil, fmt.Errorf("collect payouts for %s: page %d: %w", account, pageIdx, err)
		}

		for _, payout := range page.Payouts {
			record, err := adapters.MapUpstreamPayoutToDomain(payout)
			if err != nil {
				return nil, fmt.Errorf("collect payouts for %s: %w", account, err)
			}
			set.Records = append(set.Records, record)
		}

		set.Total = page.Total
		if page.Next == "" || len(page.Payouts) < c.cfg.PageSize {
			break
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("account", account).
		Int("records", len(set.Records)).
		Int("total", set.Total).
		Msg("collected payouts")

	return set, nil
}
