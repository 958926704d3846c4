package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RingListStatsName = "xboot/xring"

	rejectedReasonKey = "xring.reason"
)

var (
	rejectedEmptyAttrs      = attribute.NewSet(attribute.String(rejectedReasonKey, "empty"))
	rejectedOutOfRangeAttrs = attribute.NewSet(attribute.String(rejectedReasonKey, "out_of_range"))
)

type ringListStats struct {
	elementCount  metric.Int64UpDownCounter
	insertCount   metric.Int64Counter
	removeCount   metric.Int64Counter
	rejectedCount metric.Int64Counter
	lookupSteps   metric.Int64Histogram
}

func (stats *ringListStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1)
	stats.elementCount.Add(context.Background(), 1)
}

func (stats *ringListStats) IncreaseRemoveCount() {
	if stats == nil {
		return
	}
	stats.removeCount.Add(context.Background(), 1)
	stats.elementCount.Add(context.Background(), -1)
}

func (stats *ringListStats) IncreaseRejectedCount(err error) {
	if stats == nil {
		return
	}
	as := lo.Ternary(errors.Is(err, ErrRingListEmpty), rejectedEmptyAttrs, rejectedOutOfRangeAttrs)
	stats.rejectedCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

// RecordLookupSteps records how many links a positional lookup walked.
func (stats *ringListStats) RecordLookupSteps(steps int64) {
	if stats == nil {
		return
	}
	stats.lookupSteps.Record(context.Background(), steps)
}

func newRingListStats(name string) *ringListStats {
	meterName := fmt.Sprintf("%s/%s", RingListStatsName, name)
	return &ringListStats{
		elementCount: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				"xring.element.count",
				metric.WithDescription("The number of elements in the ring list."),
			),
		),
		insertCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xring.insert.count",
				metric.WithDescription("The number of elements inserted into the ring list."),
			),
		),
		removeCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xring.remove.count",
				metric.WithDescription("The number of elements removed from the ring list."),
			),
		),
		rejectedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xring.rejected.count",
				metric.WithDescription("The number of operations rejected by index validation."),
			),
		),
		lookupSteps: lo.Must[metric.Int64Histogram](otel.Meter(meterName).
			Int64Histogram(
				"xring.lookup.steps",
				metric.WithDescription("The number of links walked by a positional lookup."),
				metric.WithUnit("{link}"),
			),
		),
	}
}
