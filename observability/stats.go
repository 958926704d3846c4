package observability

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const ringListAttrKey = "xring.list"

var runtimeOnce sync.Once

// Sizer is satisfied by both ring list variants.
type Sizer interface {
	Len() int64
}

// RingListsStats observes the sizes of a set of named ring lists.
// Len is called from the collecting goroutine, so lists mutated by other
// goroutines must be guarded by the caller.
type RingListsStats struct {
	lock         sync.Mutex
	lists        map[string]Sizer
	elements     metric.Int64ObservableGauge
	listCount    metric.Int64ObservableGauge
	registration metric.Registration
}

func meterName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xboot/xring/app")
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

// NewRingListsStats registers the observable gauges on the global meter
// provider. The gauges stop reporting once ctx is done or Close is called.
func NewRingListsStats(ctx context.Context, name string) *RingListsStats {
	meter := otel.Meter(meterName(name), metric.WithInstrumentationVersion(otelruntime.Version()))
	stats := &RingListsStats{
		lists: make(map[string]Sizer, 8),
		elements: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"xring.app.elements",
			metric.WithDescription("The number of elements held by each observed ring list."),
		)),
		listCount: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"xring.app.lists",
			metric.WithDescription("The number of observed ring lists."),
		)),
	}
	stats.registration = lo.Must[metric.Registration](meter.RegisterCallback(
		stats.observe,
		stats.elements,
		stats.listCount,
	))
	go func() {
		<-ctx.Done()
		_ = stats.Close()
	}()
	return stats
}

func (stats *RingListsStats) observe(_ context.Context, ob metric.Observer) error {
	stats.lock.Lock()
	defer stats.lock.Unlock()
	for name, l := range stats.lists {
		ob.ObserveInt64(stats.elements, l.Len(), metric.WithAttributes(attribute.String(ringListAttrKey, name)))
	}
	ob.ObserveInt64(stats.listCount, int64(len(stats.lists)))
	return nil
}

// Watch adds or replaces the list observed under name.
func (stats *RingListsStats) Watch(name string, l Sizer) {
	if l == nil {
		return
	}
	stats.lock.Lock()
	defer stats.lock.Unlock()
	stats.lists[name] = l
}

func (stats *RingListsStats) Unwatch(name string) {
	stats.lock.Lock()
	defer stats.lock.Unlock()
	delete(stats.lists, name)
}

func (stats *RingListsStats) Close() error {
	stats.lock.Lock()
	reg := stats.registration
	stats.registration = nil
	stats.lists = map[string]Sizer{}
	stats.lock.Unlock()
	if reg == nil {
		return nil
	}
	// Unregister waits for running callbacks, which take the lock.
	return reg.Unregister()
}

// StartRuntimeStats starts the Go runtime instruments once per process.
func StartRuntimeStats() (err error) {
	runtimeOnce.Do(func() {
		err = otelruntime.Start(otelruntime.WithMeterProvider(otel.GetMeterProvider()))
	})
	return err
}
