package timing

import (
	"context"

	servertiming "github.com/mitchellh/go-server-timing"
)

// Metric wraps a running Server-Timing metric. The zero value is a no-op.
type Metric struct {
	metric *servertiming.Metric
}

// Stop ends the measurement.
func (m *Metric) Stop() {
	if m != nil && m.metric != nil {
		m.metric.Stop()
	}
}

// Start begins a named Server-Timing metric on the request carried by ctx.
// Without the timing middleware in the chain it returns a no-op metric.
func Start(ctx context.Context, name string) *Metric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &Metric{}
	}
	return &Metric{metric: timing.NewMetric(name).Start()}
}

// StartWithDesc is Start with a human readable description.
func StartWithDesc(ctx context.Context, name, desc string) *Metric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &Metric{}
	}
	return &Metric{metric: timing.NewMetric(name).WithDesc(desc).Start()}
}
