package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const report_perf_stats = "perf_stats.cpu"

type perfGauges struct {
	cpu         metric.Float64Gauge
	allocatedMb metric.Int64Gauge
	liveObjects metric.Int64Gauge
	goroutines  metric.Int64Gauge
}

func newPerfGauges(meter metric.Meter) perfGauges {
	g := perfGauges{}
	g.cpu, _ = meter.Float64Gauge("cpu_usage", metric.WithUnit("%"))
	g.allocatedMb, _ = meter.Int64Gauge("allocated_mb", metric.WithUnit("MB"))
	g.liveObjects, _ = meter.Int64Gauge("live_objects")
	g.goroutines, _ = meter.Int64Gauge("goroutine_count")
	return g
}

// record samples cpu over a fraction of the interval so a slow sample never
// overlaps the next tick.
func (g perfGauges) record(ctx context.Context, tel API, interval time.Duration) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	g.allocatedMb.Record(ctx, int64(mem.Alloc/1_000_000))
	g.liveObjects.Record(ctx, int64(mem.Mallocs)-int64(mem.Frees))
	g.goroutines.Record(ctx, int64(runtime.NumGoroutine()))

	usage, err := cpu.PercentWithContext(ctx, interval/6, false)
	switch {
	case err != nil:
		if ctx.Err() == nil {
			tel.ReportWarning(report_perf_stats, err)
		}
	case len(usage) > 0:
		g.cpu.Record(ctx, usage[0])
	}
}

// InstrumentPerfStats records process gauges every interval until ctx is done.
func InstrumentPerfStats(ctx context.Context, tel API, interval time.Duration) {
	gauges := newPerfGauges(otel.Meter("deckbox.perf_stats"))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				gauges.record(ctx, tel, interval)
			case <-ctx.Done():
				return
			}
		}
	}()
}
