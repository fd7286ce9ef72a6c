package timing

import (
	"context"
	"testing"

	servertiming "github.com/mitchellh/go-server-timing"
)

func TestStartWithoutHeaderIsNoop(t *testing.T) {
	m := Start(context.Background(), "db")
	m.Stop()

	var nilMetric *Metric
	nilMetric.Stop()
}

func TestStartRecordsMetric(t *testing.T) {
	var header servertiming.Header
	ctx := servertiming.NewContext(context.Background(), &header)

	Start(ctx, "db").Stop()
	StartWithDesc(ctx, "svc", "order placement").Stop()

	if len(header.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(header.Metrics))
	}
	if header.Metrics[0].Name != "db" || header.Metrics[1].Desc != "order placement" {
		t.Fatalf("unexpected metrics %+v", header.Metrics)
	}
	if header.Metrics[0].Duration < 0 {
		t.Fatalf("expected non negative duration")
	}
}
