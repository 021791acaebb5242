package tracker

import "context"

// Noop is used when no tracker database is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Record(_ context.Context, _ Call) error { return nil }

func (n *Noop) Stats(_ context.Context) ([]EndpointStats, error) { return nil, nil }

func (n *Noop) Close() error { return nil }
