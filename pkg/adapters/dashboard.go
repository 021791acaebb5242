package adapters

import (
	"github.com/de-tools/seller-atlas/pkg/models/api"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
)

func MapListingRecordDomainToApi(r domain.ListingRecord) api.ListingRecord {
	return api.ListingRecord{
		ItemID:    r.ItemID,
		Title:     r.Title,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Currency:  r.Currency,
		Status:    r.Status,
		StartTime: r.StartTime,
	}
}

func MapListingRecordSetDomainToApi(s domain.ListingRecordSet) api.ListingRecordSet {
	res := api.ListingRecordSet{
		Account:      s.Account,
		Records:      make([]api.ListingRecord, 0, len(s.Records)),
		TotalEntries: s.TotalEntries,
		FetchedAt:    s.FetchedAt,
	}
	for _, r := range s.Records {
		res.Records = append(res.Records, MapListingRecordDomainToApi(r))
	}
	return res
}

func MapPayoutRecordDomainToApi(r domain.PayoutRecord) api.PayoutRecord {
	return api.PayoutRecord{
		PayoutID:         r.PayoutID,
		Status:           r.Status,
		Amount:           r.Amount,
		Currency:         r.Currency,
		Date:             r.Date,
		TransactionCount: r.TransactionCount,
	}
}

func MapPayoutRecordSetDomainToApi(s domain.PayoutRecordSet) api.PayoutRecordSet {
	res := api.PayoutRecordSet{
		Account:   s.Account,
		Records:   make([]api.PayoutRecord, 0, len(s.Records)),
		Total:     s.Total,
		FetchedAt: s.FetchedAt,
	}
	for _, r := range s.Records {
		res.Records = append(res.Records, MapPayoutRecordDomainToApi(r))
	}
	return res
}

func MapEventDetailDomainToApi(d domain.EventDetail) api.EventDetail {
	return api.EventDetail{
		Title:     d.Title,
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		Amount:    d.Amount,
	}
}

func MapChartDatasetDomainToApi(d domain.ChartDataset) api.ChartDataset {
	res := api.ChartDataset{
		Label:  d.Label,
		Color:  d.Color,
		Points: make([]api.ChartPoint, 0, len(d.Points)),
	}
	for _, p := range d.Points {
		point := api.ChartPoint{X: p.X, Y: p.Y}
		if p.Detail != nil {
			detail := MapEventDetailDomainToApi(*p.Detail)
			point.Detail = &detail
		}
		res.Points = append(res.Points, point)
	}
	return res
}

func MapAlignedSeriesDomainToApi(s domain.AlignedChartSeries) api.ChartSeries {
	return api.ChartSeries{
		Labels: s.Labels,
		Datasets: []api.ChartDataset{
			MapChartDatasetDomainToApi(s.Listings),
			MapChartDatasetDomainToApi(s.Payouts),
		},
	}
}
