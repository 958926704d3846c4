package list

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/benz9527/xring/lib/xlog"
)

const (
	defaultRingListArenaCap = 16
)

var ringListSeq atomic.Uint64

type ringListOption struct {
	kind        string
	name        string
	logger      xlog.XLogger
	arenaCap    int
	enableStats bool
}

func (opt *ringListOption) getName() string {
	if opt.name == "" {
		opt.name = fmt.Sprintf("xring-%s-%d", opt.kind, ringListSeq.Add(1))
	}
	return opt.name
}

func (opt *ringListOption) getLogger() xlog.XLogger {
	if opt.logger == nil {
		opt.logger = xlog.NewNopXLogger()
	}
	return opt.logger
}

func (opt *ringListOption) getArenaCap() int {
	if opt.arenaCap <= 0 {
		return defaultRingListArenaCap
	}
	return opt.arenaCap
}

func newRingListOption(kind string, opts ...RingListOption) *ringListOption {
	opt := &ringListOption{kind: kind}
	for _, o := range opts {
		if o != nil {
			o(opt)
		}
	}
	return opt
}

type RingListOption func(opt *ringListOption)

// WithRingListName names the list in logs and metrics.
func WithRingListName(name string) RingListOption {
	return func(opt *ringListOption) {
		if len(strings.TrimSpace(name)) <= 0 {
			panic("ring list's name must not be empty or blank")
		}
		opt.name = name
	}
}

func WithRingListLogger(logger xlog.XLogger) RingListOption {
	return func(opt *ringListOption) {
		if logger == nil {
			panic("ring list's logger must not be nil")
		}
		opt.logger = logger
	}
}

// WithRingListStats enables the otel instruments of the list.
func WithRingListStats() RingListOption {
	return func(opt *ringListOption) {
		opt.enableStats = true
	}
}

// WithRingListArenaCap pre-allocates node slots.
func WithRingListArenaCap(capacity int) RingListOption {
	return func(opt *ringListOption) {
		if capacity <= 0 {
			panic("ring list's arena capacity must be greater than 0")
		}
		opt.arenaCap = capacity
	}
}
