package list

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xring/lib/xlog"
)

type ringListLogWriter struct {
	data []byte
}

func (w *ringListLogWriter) Write(p []byte) (n int, err error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *ringListLogWriter) Sync() error {
	return nil
}

func (w *ringListLogWriter) Lines(t *testing.T) []map[string]any {
	t.Helper()
	res := make([]map[string]any, 0, 8)
	for _, line := range strings.Split(strings.TrimSpace(string(w.data)), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return res
}

func TestRingListOptions_Panics(t *testing.T) {
	require.Panics(t, func() {
		NewRingList[int](WithRingListName("  "))
	})
	require.Panics(t, func() {
		NewBiRingList[int](WithRingListLogger(nil))
	})
	require.Panics(t, func() {
		NewRingList[int](WithRingListArenaCap(0))
	})
	require.NotPanics(t, func() {
		NewBiRingList[int](nil, WithRingListArenaCap(1))
	})
}

func TestRingListOptions_DefaultName(t *testing.T) {
	l1 := newRingList[int]()
	l2 := newRingList[int]()
	require.True(t, strings.HasPrefix(l1.name, "xring-uni-"))
	require.NotEqual(t, l1.name, l2.name)

	bl := newBiRingList[int]()
	require.True(t, strings.HasPrefix(bl.name, "xring-bi-"))

	named := newBiRingList[int](WithRingListName("sessions"))
	require.Equal(t, "sessions", named.name)
	require.Nil(t, named.stats)
}

func TestRingList_LogsRejectedOperation(t *testing.T) {
	forEachRingList(t, func(t *testing.T, f ringListFactory) {
		w := &ringListLogWriter{data: make([]byte, 0, 1024)}
		logger := xlog.NewXLogger(
			xlog.WithXLoggerWriteSyncer(w),
			xlog.WithXLoggerEncoder(xlog.JSON),
			xlog.WithXLoggerLevel(xlog.LogLevelDebug),
		)
		l := f.newList(WithRingListName("logged-"+f.name), WithRingListLogger(logger))
		l.Add(1)
		_, err := l.Remove(5)
		require.ErrorIs(t, err, ErrRingListIndexOutOfRange)
		require.NoError(t, logger.Sync())

		lines := w.Lines(t)
		require.Len(t, lines, 1)
		require.Equal(t, "[xring] operation rejected", lines[0]["msg"])
		require.Equal(t, "logged-"+f.name, lines[0]["list"])
		require.Equal(t, "remove", lines[0]["op"])
		require.Equal(t, float64(5), lines[0]["index"])
		require.Equal(t, float64(1), lines[0]["len"])
	})
}

func TestRingList_LogsBrokenRing(t *testing.T) {
	w := &ringListLogWriter{data: make([]byte, 0, 1024)}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriteSyncer(w),
		xlog.WithXLoggerEncoder(xlog.JSON),
		xlog.WithXLoggerLevel(xlog.LogLevelInfo),
	)
	l := newRingList[int](WithRingListName("broken"), WithRingListLogger(logger))
	for i := 0; i < 3; i++ {
		l.Add(i)
	}
	require.NoError(t, l.Verify())
	require.Empty(t, w.Lines(t))

	l.node(l.walk(1)).pos = 7
	err := l.Verify()
	require.Error(t, err)
	require.NoError(t, logger.Sync())

	lines := w.Lines(t)
	require.Len(t, lines, 1)
	require.Equal(t, "[xring] ring verification failed", lines[0]["msg"])
	require.Equal(t, "[xring] ring invariants broken", lines[0]["errorMsg"])
	require.Equal(t, "broken", lines[0]["list"])
	require.Equal(t, []any{"node 1 stores position 7, expected 1"}, lines[0]["errors"])
}
