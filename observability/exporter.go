package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type MetricsExporterType uint8

const (
	ConsoleMetricsExporter MetricsExporterType = iota
	PrometheusMetricsExporter
	_metricsExporterMax
)

var errUnknownMetricsExporter = errors.New("[xring] unknown metrics exporter type")

type exporterOption struct {
	interval   time.Duration
	timeout    time.Duration
	writer     io.Writer
	registerer promclient.Registerer
}

type MetricsExporterOption func(opt *exporterOption)

func WithMetricsExportInterval(interval time.Duration) MetricsExporterOption {
	return func(opt *exporterOption) {
		if interval <= 0 {
			panic("metrics export interval must be greater than 0")
		}
		opt.interval = interval
	}
}

func WithMetricsExportTimeout(timeout time.Duration) MetricsExporterOption {
	return func(opt *exporterOption) {
		if timeout <= 0 {
			panic("metrics export timeout must be greater than 0")
		}
		opt.timeout = timeout
	}
}

// WithConsoleWriter redirects the console exporter, stdout by default.
func WithConsoleWriter(w io.Writer) MetricsExporterOption {
	return func(opt *exporterOption) {
		if w == nil {
			panic("console metrics writer must not be nil")
		}
		opt.writer = w
	}
}

// WithPrometheusRegisterer registers the collector somewhere other than
// the prometheus default registerer.
func WithPrometheusRegisterer(reg promclient.Registerer) MetricsExporterOption {
	return func(opt *exporterOption) {
		if reg == nil {
			panic("prometheus registerer must not be nil")
		}
		opt.registerer = reg
	}
}

// InitMetricsExporter installs a global meter provider backed by the
// exporter typ. Ring lists built with stats enabled afterwards report to it.
// The returned callback flushes and shuts the provider down.
func InitMetricsExporter(typ MetricsExporterType, opts ...MetricsExporterOption) (func(ctx context.Context) error, error) {
	opt := &exporterOption{
		interval: 10 * time.Second,
		timeout:  5 * time.Second,
	}
	for _, o := range opts {
		if o != nil {
			o(opt)
		}
	}
	switch typ {
	case ConsoleMetricsExporter:
		return newConsoleMetricsExporter(opt)
	case PrometheusMetricsExporter:
		return newPrometheusMetricsExporter(opt)
	default:
	}
	return nil, errUnknownMetricsExporter
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(opt *exporterOption) (func(ctx context.Context) error, error) {
	stdoutOpts := make([]stdoutmetric.Option, 0, 1)
	if opt.writer != nil {
		stdoutOpts = append(stdoutOpts, stdoutmetric.WithWriter(opt.writer))
	}
	exporter, err := stdoutmetric.New(stdoutOpts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(opt.interval),
		metric.WithTimeout(opt.timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func newPrometheusMetricsExporter(opt *exporterOption) (func(ctx context.Context) error, error) {
	promOpts := make([]prometheus.Option, 0, 1)
	if opt.registerer != nil {
		promOpts = append(promOpts, prometheus.WithRegisterer(opt.registerer))
	}
	exporter, err := prometheus.New(promOpts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
