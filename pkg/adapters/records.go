package adapters

import (
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/models/upstream"
)

// MapUpstreamItemToDomain normalizes one listing item. The upstream start time
// is an ISO-8601 timestamp; a value that does not parse makes the whole page
// malformed, so the error propagates instead of being skipped.
func MapUpstreamItemToDomain(item upstream.Item) (domain.ListingRecord, error) {
	startTime, err := time.Parse(time.RFC3339, item.ListingDetails.StartTime)
	if err != nil {
		return domain.ListingRecord{}, fmt.Errorf("parse listing %s start time: %w", item.ItemID, err)
	}

	return domain.ListingRecord{
		ItemID:    item.ItemID,
		Title:     item.Title,
		Quantity:  item.Quantity,
		UnitPrice: item.SellingStatus.CurrentPrice.Value,
		Currency:  item.SellingStatus.CurrentPrice.CurrencyID,
		Status:    item.SellingStatus.ListingStatus,
		StartTime: startTime,
	}, nil
}

// MapUpstreamPayoutToDomain normalizes one payout. Amounts arrive as decimal
// strings and are parsed, never concatenated.
func MapUpstreamPayoutToDomain(payout upstream.Payout) (domain.PayoutRecord, error) {
	amount, err := strconv.ParseFloat(payout.Amount.Value, 64)
	if err != nil {
		return domain.PayoutRecord{}, fmt.Errorf("parse payout %s amount %q: %w", payout.PayoutID, payout.Amount.Value, err)
	}

	date, err := time.Parse(time.RFC3339, payout.PayoutDate)
	if err != nil {
		return domain.PayoutRecord{}, fmt.Errorf("parse payout %s date: %w", payout.PayoutID, err)
	}

	return domain.PayoutRecord{
		PayoutID:         payout.PayoutID,
		Status:           payout.PayoutStatus,
		Amount:           amount,
		Currency:         payout.Amount.Currency,
		Date:             date,
		TransactionCount: payout.TransactionCount,
	}, nil
}
