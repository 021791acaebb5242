// Package fanout runs one collection cycle per tracked account, concurrently
// and with isolated state, so one account's failure never blocks or corrupts
// another's.
package fanout

import (
	"context"
	"sync"
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type CollectorAPI interface {
	CollectListings(ctx context.Context, account string, from, to time.Time) (*domain.ListingRecordSet, error)
	CollectPayouts(ctx context.Context, account string) (*domain.PayoutRecordSet, error)
}

type Fanout struct {
	collector CollectorAPI
	accounts  []string

	mu    sync.Mutex
	slots map[string]*slot
}

// slot is one account's mutable refresh state. generation tags every
// dispatched cycle; a completion whose generation is no longer current is
// dropped, so a stale response can never overwrite a newer one.
type slot struct {
	generation uint64
	cancel     context.CancelFunc
	state      domain.AccountState
}

func New(collector CollectorAPI, accounts []string) *Fanout {
	f := &Fanout{
		collector: collector,
		accounts:  append([]string{}, accounts...),
		slots:     make(map[string]*slot, len(accounts)),
	}
	for _, account := range accounts {
		f.slots[account] = &slot{}
	}
	return f
}

func (f *Fanout) Accounts() []string {
	return append([]string{}, f.accounts...)
}

// RefreshAll dispatches one collection cycle per account and returns without
// waiting. Any still-running cycle for an account is cancelled and its
// eventual completion discarded.
func (f *Fanout) RefreshAll(ctx context.Context, from, to time.Time) {
	for _, account := range f.accounts {
		f.refresh(ctx, account, from, to)
	}
}

func (f *Fanout) refresh(ctx context.Context, account string, from, to time.Time) {
	f.mu.Lock()
	s := f.slots[account]
	s.generation++
	generation := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Loading = true
	s.state.Err = ""
	s.state.From = from
	s.state.To = to
	f.mu.Unlock()

	go f.run(runCtx, account, from, to, generation)
}

func (f *Fanout) run(ctx context.Context, account string, from, to time.Time, generation uint64) {
	logger := zerolog.Ctx(ctx)

	listings, err := f.collector.CollectListings(ctx, account, from, to)
	var payouts *domain.PayoutRecordSet
	if err == nil {
		payouts, err = f.collector.CollectPayouts(ctx, account)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.slots[account]
	if s.generation != generation {
		// Superseded by a newer refresh.
		return
	}

	s.state.Loading = false
	if err != nil {
		logger.Error().Err(err).Str("account", account).Msg("refresh failed")
		s.state.Err = err.Error()
		s.state.Listings = &domain.ListingRecordSet{
			Account:   account,
			Records:   []domain.ListingRecord{},
			FetchedAt: time.Now(),
		}
		s.state.Payouts = &domain.PayoutRecordSet{
			Account:   account,
			Records:   []domain.PayoutRecord{},
			FetchedAt: time.Now(),
		}
		return
	}

	s.state.Listings = listings
	s.state.Payouts = payouts
	s.state.Err = ""
}

// State returns a copy of one account's slot.
func (f *Fanout) State(account string) (domain.AccountState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slots[account]
	if !ok {
		return domain.AccountState{}, false
	}
	return s.state, true
}

// Snapshot returns a copy of every account's state, keyed by account.
func (f *Fanout) Snapshot() map[string]domain.AccountState {
	f.mu.Lock()
	defer f.mu.Unlock()

	states := make(map[string]domain.AccountState, len(f.slots))
	for account, s := range f.slots {
		states[account] = s.state
	}
	return states
}
