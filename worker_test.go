package axon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitOutcome(t *testing.T, w *RenderWorker, match func(RenderOutcome) bool) RenderOutcome {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := w.TryLatest(); ok && match(res) {
			return res
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for render outcome")
	return RenderOutcome{}
}

func TestWorkerRenders(t *testing.T) {
	w := NewRenderWorker(createTestImage(40, 40), WorkerOptions{})
	defer w.Close()

	s := Settings{Width: 10}
	w.Schedule(s)

	res := waitOutcome(t, w, func(r RenderOutcome) bool { return r.Settings == s })
	require.NoError(t, res.Err)
	require.NotNil(t, res.Grid)
	assert.Equal(t, 10, res.Grid.Cols)
	assert.NotEmpty(t, res.Output)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestWorkerLatestWins(t *testing.T) {
	w := NewRenderWorker(createTestImage(60, 60), WorkerOptions{})
	defer w.Close()

	// A burst of settings changes must converge on the last one; the
	// intermediate frames may be dropped.
	for width := 4; width <= 20; width += 2 {
		w.Schedule(Settings{Width: width})
	}
	final := Settings{Width: 20}
	w.Schedule(final) // identical to the last burst entry, skipped

	res := waitOutcome(t, w, func(r RenderOutcome) bool { return r.Settings == final })
	require.NoError(t, res.Err)
	assert.Equal(t, 20, res.Grid.Cols)

	// Once settled, the outcome stays put.
	again, ok := w.TryLatest()
	require.True(t, ok)
	assert.Equal(t, final, again.Settings)
}

func TestWorkerReportsErrors(t *testing.T) {
	w := NewRenderWorker(createTestImage(20, 20), WorkerOptions{})
	defer w.Close()

	bad := Settings{Width: 10, Filter: Filter(42)}
	w.Schedule(bad)

	res := waitOutcome(t, w, func(r RenderOutcome) bool { return r.Err != nil })
	var uerr *UnsupportedSettingError
	assert.ErrorAs(t, res.Err, &uerr)
	assert.Nil(t, res.Grid)
	assert.Empty(t, res.Output)
}

func TestWorkerScheduleNeverBlocks(t *testing.T) {
	// Schedule races the worker for the one-slot queue; even when the
	// worker drains it between the caller's send attempts, the caller
	// must never end up parked on an empty channel.
	w := NewRenderWorker(createTestImage(30, 30), WorkerOptions{})
	defer w.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			w.Schedule(Settings{Width: 2 + i%7})
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Schedule blocked against a draining worker")
	}

	final := Settings{Width: 2 + 499%7}
	res := waitOutcome(t, w, func(r RenderOutcome) bool { return r.Settings == final })
	require.NoError(t, res.Err)
}

func TestWorkerNoResultBeforeSchedule(t *testing.T) {
	w := NewRenderWorker(createTestImage(10, 10), WorkerOptions{})
	defer w.Close()

	_, ok := w.TryLatest()
	assert.False(t, ok)
}
