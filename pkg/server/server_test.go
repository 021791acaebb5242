package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/de-tools/seller-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/seller-atlas/pkg/models/api"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) Accounts() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *mockAccountService) RefreshAll(ctx context.Context, from, to time.Time) {
	m.Called(ctx, from, to)
}

func (m *mockAccountService) State(account string) (domain.AccountState, bool) {
	args := m.Called(account)
	return args.Get(0).(domain.AccountState), args.Bool(1)
}

func newTestRouter(accounts *mockAccountService) http.Handler {
	return ConfigureRouter(Config{
		Dependencies: Dependencies{
			Dashboard: dashboard.NewHandler(accounts, nil),
			Logger:    zerolog.Nop(),
		},
	})
}

// fetchedState carries one month of collected data: two listings around one
// payout, so the chart axis has a gap in each series.
func fetchedState(account string) domain.AccountState {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	return domain.AccountState{
		Listings: &domain.ListingRecordSet{
			Account: account,
			Records: []domain.ListingRecord{
				{
					ItemID:    "110001",
					Title:     "A",
					Quantity:  1,
					UnitPrice: 100,
					Currency:  "USD",
					Status:    "Active",
					StartTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					ItemID:    "110002",
					Title:     "B",
					Quantity:  2,
					UnitPrice: 25,
					Currency:  "USD",
					Status:    "Active",
					StartTime: time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC),
				},
			},
			TotalEntries: 2,
			FetchedAt:    to,
		},
		Payouts: &domain.PayoutRecordSet{
			Account: account,
			Records: []domain.PayoutRecord{
				{
					PayoutID: "po-1",
					Status:   "SUCCEEDED",
					Amount:   80,
					Currency: "USD",
					Date:     time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				},
			},
			Total:     1,
			FetchedAt: to,
		},
		From: from,
		To:   to,
	}
}

func TestListAccounts(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("Accounts").Return([]string{"beta", "alpha"})
	accounts.On("State", "alpha").Return(fetchedState("alpha"), true)
	accounts.On("State", "beta").Return(domain.AccountState{Loading: true}, true)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response []api.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)

	// Accounts come back sorted by name.
	assert.Equal(t, "alpha", response[0].Name)
	assert.True(t, response[0].Fetched)
	assert.False(t, response[0].Loading)

	assert.Equal(t, "beta", response[1].Name)
	assert.True(t, response[1].Loading)
	assert.False(t, response[1].Fetched)
}

func TestRefresh(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("RefreshAll", mock.Anything, mock.Anything, mock.Anything).Return()

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/refresh", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"refreshing"}`, rec.Body.String())
	accounts.AssertExpectations(t)
}

func TestRefresh_RangeValidation(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "malformed from date",
			url:      "/api/v1/accounts/refresh?from=01-01-2025",
			expected: "invalid 'from' date format. Expected format: YYYY-MM-DD\n",
		},
		{
			name:     "malformed to date",
			url:      "/api/v1/accounts/refresh?to=2025/01/31",
			expected: "invalid 'to' date format. Expected format: YYYY-MM-DD\n",
		},
		{
			name:     "inverted range",
			url:      "/api/v1/accounts/refresh?from=2025-02-01&to=2025-01-01",
			expected: "start date cannot be after end date\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(mockAccountService)

			rec := httptest.NewRecorder()
			newTestRouter(accounts).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.url, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expected, rec.Body.String())
			// A rejected range must not start a collection cycle.
			accounts.AssertNotCalled(t, "RefreshAll", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetListings(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("State", "alice").Return(fetchedState("alice"), true)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/accounts/alice/listings", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.ListingRecordSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "alice", response.Account)
	require.Len(t, response.Records, 2)
	assert.Equal(t, "110001", response.Records[0].ItemID)
	assert.Equal(t, 100.0, response.Records[0].UnitPrice)
	assert.Equal(t, 2, response.TotalEntries)
}

func TestGetPayouts(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("State", "alice").Return(fetchedState("alice"), true)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/accounts/alice/payouts", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.PayoutRecordSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Records, 1)
	assert.Equal(t, "po-1", response.Records[0].PayoutID)
	assert.Equal(t, 80.0, response.Records[0].Amount)
	assert.Equal(t, 1, response.Total)
}

func TestGetChart_AlignsBothSeries(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("State", "alice").Return(fetchedState("alice"), true)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/accounts/alice/chart", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.ChartSeries
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, []string{"2025-01-01", "2025-01-02", "2025-01-03"}, response.Labels)
	require.Len(t, response.Datasets, 2)

	listings := response.Datasets[0]
	assert.Equal(t, "Total Listing Value", listings.Label)
	assert.Equal(t, "#EC4899", listings.Color)
	require.Len(t, listings.Points, 3)
	require.NotNil(t, listings.Points[0].Y)
	assert.Equal(t, 100.0, *listings.Points[0].Y)
	assert.Nil(t, listings.Points[1].Y)
	require.NotNil(t, listings.Points[2].Y)
	assert.Equal(t, 150.0, *listings.Points[2].Y)
	require.NotNil(t, listings.Points[2].Detail)
	assert.Equal(t, "B", listings.Points[2].Detail.Title)

	payouts := response.Datasets[1]
	assert.Equal(t, "Total Payout Value", payouts.Label)
	assert.Equal(t, "#3B82F6", payouts.Color)
	require.Len(t, payouts.Points, 3)
	assert.Nil(t, payouts.Points[0].Y)
	require.NotNil(t, payouts.Points[1].Y)
	assert.Equal(t, 80.0, *payouts.Points[1].Y)
	assert.Nil(t, payouts.Points[2].Y)
}

func TestGetChart_ThemeSelectsPalette(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("State", "alice").Return(fetchedState("alice"), true)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/accounts/alice/chart?theme=dark", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.ChartSeries
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Datasets, 2)
	assert.Equal(t, "#F472B6", response.Datasets[0].Color)
	assert.Equal(t, "#60A5FA", response.Datasets[1].Color)
}

func TestGetChart_NarrowedRangeRebuildsSeries(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("State", "alice").Return(fetchedState("alice"), true)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/accounts/alice/chart?from=2025-01-02&to=2025-01-03", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.ChartSeries
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	// The January 1st listing falls outside the narrowed range, so the
	// running total starts over from the remaining listing.
	assert.Equal(t, []string{"2025-01-02", "2025-01-03"}, response.Labels)
	require.Len(t, response.Datasets[0].Points, 2)
	assert.Nil(t, response.Datasets[0].Points[0].Y)
	require.NotNil(t, response.Datasets[0].Points[1].Y)
	assert.Equal(t, 50.0, *response.Datasets[0].Points[1].Y)
}

func TestAccountEndpoints_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		state    domain.AccountState
		known    bool
		code     int
		expected string
	}{
		{
			name:     "unknown account",
			url:      "/api/v1/accounts/nobody/listings",
			known:    false,
			code:     http.StatusNotFound,
			expected: "unknown account\n",
		},
		{
			name:     "listings before first fetch",
			url:      "/api/v1/accounts/alice/listings",
			state:    domain.AccountState{Loading: true},
			known:    true,
			code:     http.StatusConflict,
			expected: "no data collected for account yet\n",
		},
		{
			name:     "chart before first fetch",
			url:      "/api/v1/accounts/alice/chart",
			state:    domain.AccountState{Loading: true},
			known:    true,
			code:     http.StatusConflict,
			expected: "no data collected for account yet\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(mockAccountService)
			accounts.On("State", mock.Anything).Return(tt.state, tt.known)

			rec := httptest.NewRecorder()
			newTestRouter(accounts).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.expected, rec.Body.String())
		})
	}
}

func TestWebAPI_StartStopsOnShutdownSignal(t *testing.T) {
	accounts := new(mockAccountService)
	accounts.On("Accounts").Return([]string{})

	api := NewWebAPI(Config{
		Addr:            "127.0.0.1:18473",
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Dashboard: dashboard.NewHandler(accounts, nil),
			Logger:    zerolog.Nop(),
		},
	})

	done := make(chan error, 1)
	go func() { done <- api.Start() }()

	// The signal handler is registered before the listener starts, so once a
	// request succeeds the shutdown path is armed.
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18473/api/v1/accounts")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after shutdown signal")
	}
}

func TestGetTrackerStats_EmptyTracker(t *testing.T) {
	accounts := new(mockAccountService)

	rec := httptest.NewRecorder()
	newTestRouter(accounts).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tracker", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
