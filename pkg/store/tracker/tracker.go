// Package tracker records upstream API calls for the dashboard's usage view.
package tracker

import (
	"context"
	"time"
)

// Call is one upstream request: which endpoint was hit for which account,
// what came back and how long it took.
type Call struct {
	ID       string
	Endpoint string
	Account  string
	Status   int
	Duration time.Duration
	CalledAt time.Time
}

// EndpointStats aggregates the recorded calls per endpoint.
type EndpointStats struct {
	Endpoint     string
	Calls        int64
	LastCalledAt time.Time
}

type Tracker interface {
	Record(ctx context.Context, call Call) error
	Stats(ctx context.Context) ([]EndpointStats, error)
	Close() error
}
