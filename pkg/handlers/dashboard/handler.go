package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/de-tools/seller-atlas/pkg/adapters"
	"github.com/de-tools/seller-atlas/pkg/models/api"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/chart"
	"github.com/de-tools/seller-atlas/pkg/store/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	dateLayout = "2006-01-02"

	// The upstream's maximum window doubles as the default lookback.
	defaultRangeDays = 120
)

type AccountService interface {
	Accounts() []string
	RefreshAll(ctx context.Context, from, to time.Time)
	State(account string) (domain.AccountState, bool)
}

type Handler struct {
	accounts AccountService
	tracker  tracker.Tracker
}

func NewHandler(accounts AccountService, t tracker.Tracker) *Handler {
	if t == nil {
		t = tracker.NewNoop()
	}
	return &Handler{accounts: accounts, tracker: t}
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	names := h.accounts.Accounts()
	sort.Strings(names)

	response := make([]api.Account, 0, len(names))
	for _, name := range names {
		state, _ := h.accounts.State(name)
		response = append(response, api.Account{
			Name:    name,
			Loading: state.Loading,
			Fetched: state.Fetched(),
			Error:   state.Err,
		})
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode accounts")
	}
}

// Refresh kicks off a new collection cycle for every account and returns
// immediately; progress is observable through the account list. The cycle
// runs on a detached context so it outlives this request.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	from, to, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	refreshCtx := logger.WithContext(context.Background())
	h.accounts.RefreshAll(refreshCtx, from, to)

	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "refreshing"}); err != nil {
		logger.Error().Err(err).Msg("failed to encode refresh response")
	}
}

func (h *Handler) GetListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	account := chi.URLParam(r, "account")

	state, ok := h.lookup(w, account)
	if !ok {
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapListingRecordSetDomainToApi(*state.Listings)); err != nil {
		logger.Error().Err(err).Str("account", account).Msg("failed to encode listings")
	}
}

func (h *Handler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	account := chi.URLParam(r, "account")

	state, ok := h.lookup(w, account)
	if !ok {
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapPayoutRecordSetDomainToApi(*state.Payouts)); err != nil {
		logger.Error().Err(err).Str("account", account).Msg("failed to encode payouts")
	}
}

// GetChart derives the aligned chart series for one account from the data
// already collected; it never re-fetches. Theme changes therefore only cost
// a re-alignment.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	account := chi.URLParam(r, "account")

	state, ok := h.lookup(w, account)
	if !ok {
		return
	}

	from, to := state.From, state.To
	if r.URL.Query().Get("from") != "" || r.URL.Query().Get("to") != "" {
		var err error
		from, to, err = parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	palette := chart.ThemePalette(r.URL.Query().Get("theme"))
	listingSeries := chart.BuildListingSeries(state.Listings.Records, from, to)
	payoutSeries := chart.BuildPayoutSeries(state.Payouts.Records, from, to)
	aligned := chart.Align(listingSeries, payoutSeries, palette)

	if err := json.NewEncoder(w).Encode(adapters.MapAlignedSeriesDomainToApi(aligned)); err != nil {
		logger.Error().Err(err).Str("account", account).Msg("failed to encode chart series")
	}
}

func (h *Handler) GetTrackerStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	stats, err := h.tracker.Stats(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read tracker stats")
		http.Error(w, "failed to read tracker stats", http.StatusInternalServerError)
		return
	}

	response := make([]api.EndpointStats, 0, len(stats))
	for _, s := range stats {
		response = append(response, api.EndpointStats{
			Endpoint:     s.Endpoint,
			Calls:        s.Calls,
			LastCalledAt: s.LastCalledAt,
		})
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode tracker stats")
	}
}

// lookup resolves an account's state and writes the error response itself
// when the account is unknown or has not been fetched yet.
func (h *Handler) lookup(w http.ResponseWriter, account string) (domain.AccountState, bool) {
	state, ok := h.accounts.State(account)
	if !ok {
		http.Error(w, "unknown account", http.StatusNotFound)
		return domain.AccountState{}, false
	}
	if !state.Fetched() {
		http.Error(w, "no data collected for account yet", http.StatusConflict)
		return domain.AccountState{}, false
	}
	return state, true
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -defaultRangeDays)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidFrom
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidTo
		}
		// Make the end date inclusive.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, errRangeInverted
	}
	return from, to, nil
}
