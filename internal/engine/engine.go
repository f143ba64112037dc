// Package engine runs dispatch cycles on a bounded worker pool so a burst of
// webhook pushes cannot exhaust the process.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/config"
	"github.com/vigilsky/dronewatch/internal/dispatch"
	"github.com/vigilsky/dronewatch/internal/metrics"
)

// work is one queued dispatch cycle: either an alert id to fetch, or a
// pre-supplied payload.
type work struct {
	alertID string
	payload *alert.Alert
	resultC chan *dispatch.Outcome
}

// Engine owns the worker pool and the tracker it feeds.
type Engine struct {
	tracker *dispatch.Tracker
	conf    config.EngineConf
	queue   chan *work
	wg      sync.WaitGroup
}

// New creates an Engine and starts its workers. Workers stop when ctx is
// cancelled or Shutdown is called.
func New(ctx context.Context, tracker *dispatch.Tracker, conf config.EngineConf) *Engine {
	e := &Engine{
		tracker: tracker,
		conf:    conf,
		queue:   make(chan *work, conf.QueueDepth),
	}
	for i := 0; i < conf.AlertWorkers; i++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.run(ctx)
		}()
	}
	return e
}

func (e *Engine) run(ctx context.Context) {
	for {
		select {
		case w, ok := <-e.queue:
			if !ok {
				return
			}
			out := e.process(ctx, w)
			if w.resultC != nil {
				w.resultC <- out
			}
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) process(ctx context.Context, w *work) *dispatch.Outcome {
	if w.payload != nil {
		return e.tracker.ProcessPayload(ctx, w.payload)
	}
	return e.tracker.ProcessAlert(ctx, w.alertID)
}

// ProcessSync runs a dispatch cycle for an alert id and waits for the
// outcome. Returns an error only for queue overflow or timeout, never for
// alert-shape problems.
func (e *Engine) ProcessSync(ctx context.Context, alertID string) (*dispatch.Outcome, error) {
	return e.submitSync(ctx, &work{alertID: alertID})
}

// ProcessPayloadSync runs a dispatch cycle for a pre-supplied alert document.
func (e *Engine) ProcessPayloadSync(ctx context.Context, a *alert.Alert) (*dispatch.Outcome, error) {
	return e.submitSync(ctx, &work{payload: a})
}

func (e *Engine) submitSync(ctx context.Context, w *work) (*dispatch.Outcome, error) {
	w.resultC = make(chan *dispatch.Outcome, 1)
	if !e.submit(w) {
		metrics.AlertsDropped.Inc()
		return nil, fmt.Errorf("alert queue full (capacity %d)", e.conf.QueueDepth)
	}
	metrics.AlertsEnqueued.Inc()

	timeout := time.Duration(e.conf.AlertTimeoutMs) * time.Millisecond
	select {
	case out := <-w.resultC:
		return out, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("dispatch timeout after %v", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ProcessAsync enqueues an alert id for background processing. Returns false
// if the queue is full.
func (e *Engine) ProcessAsync(alertID string) bool {
	if !e.submit(&work{alertID: alertID}) {
		metrics.AlertsDropped.Inc()
		return false
	}
	metrics.AlertsEnqueued.Inc()
	return true
}

func (e *Engine) submit(w *work) bool {
	select {
	case e.queue <- w:
		return true
	default:
		return false
	}
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if cap(e.queue) == 0 {
		return 0
	}
	return float64(len(e.queue)) / float64(cap(e.queue))
}

// Shutdown drains the queue and waits for all workers to finish.
func (e *Engine) Shutdown() {
	close(e.queue)
	e.wg.Wait()
}
