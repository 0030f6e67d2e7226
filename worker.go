package axon

import (
	"image"
	"sync"
	"time"
)

// RenderOutcome describes the result of one pipeline pass. Pending is
// true while an async render is in flight and the returned output may
// still be from an earlier settings snapshot.
type RenderOutcome struct {
	Grid     *CellGrid
	Output   string
	Settings Settings
	Duration time.Duration
	Err      error
	Pending  bool
}

// WorkerOptions configures the render worker.
type WorkerOptions struct {
	Workers int // number of goroutines to use; defaults to 1
	Queue   int // size of the request/result buffers; defaults to 1 (latest wins)
}

// RenderWorker runs pipeline passes on background goroutines so an
// interactive loop stays responsive. Every stage is pure, so a pass
// made stale by a newer settings snapshot is simply dropped — there is
// nothing to roll back. When the queue is full, newer requests replace
// older ones to always prioritise the latest settings.
type RenderWorker struct {
	source image.Image
	reqCh  chan Settings
	resCh  chan RenderOutcome
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu            sync.Mutex
	lastRequested Settings
	hasRequested  bool
	lastResult    RenderOutcome
}

// NewRenderWorker starts a worker bound to one source image.
func NewRenderWorker(src image.Image, opts WorkerOptions) *RenderWorker {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	queue := opts.Queue
	if queue <= 0 {
		queue = 1
	}

	w := &RenderWorker{
		source: src,
		reqCh:  make(chan Settings, queue),
		resCh:  make(chan RenderOutcome, queue),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		w.wg.Add(1)
		go w.loop()
	}

	return w
}

// Close stops all worker goroutines.
func (w *RenderWorker) Close() {
	close(w.stopCh)
	w.wg.Wait()
}

// Schedule enqueues a render with the given settings snapshot. A
// snapshot identical to the most recent request is skipped. When the
// queue is full the oldest pending request is dropped so the worker
// always converges on the latest settings.
func (w *RenderWorker) Schedule(s Settings) {
	w.mu.Lock()
	if w.hasRequested && s == w.lastRequested {
		w.mu.Unlock()
		return
	}
	w.lastRequested = s
	w.hasRequested = true
	w.mu.Unlock()

	// Never block the caller. A worker may drain the queue between a
	// failed send and a receive, so both sides stay non-blocking and
	// the send is retried after dropping the oldest request.
	for {
		select {
		case w.reqCh <- s:
			return
		default:
		}
		select {
		case <-w.reqCh:
		default:
		}
	}
}

// TryLatest returns the newest completed render, if any. It drains the
// result buffer to always surface the most recent output.
func (w *RenderWorker) TryLatest() (RenderOutcome, bool) {
	for {
		select {
		case res := <-w.resCh:
			w.mu.Lock()
			w.lastResult = res
			w.mu.Unlock()
		default:
			w.mu.Lock()
			res := w.lastResult
			has := res.Grid != nil || res.Err != nil
			w.mu.Unlock()
			return res, has
		}
	}
}

// loop consumes settings snapshots and runs the pipeline for each.
func (w *RenderWorker) loop() {
	defer w.wg.Done()

	for {
		select {
		case s := <-w.reqCh:
			start := time.Now()
			grid, err := RenderCells(w.source, s)
			res := RenderOutcome{
				Grid:     grid,
				Settings: s,
				Duration: time.Since(start),
				Err:      err,
			}
			if err == nil {
				res.Output = grid.String()
			}
			// Same non-blocking drop-oldest dance as Schedule: TryLatest
			// may drain resCh concurrently.
			for {
				select {
				case w.resCh <- res:
				default:
					select {
					case <-w.resCh:
					default:
					}
					continue
				}
				break
			}
		case <-w.stopCh:
			return
		}
	}
}
