package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/dedrone"
	"github.com/vigilsky/dronewatch/internal/metrics"
)

// Outcome is the explicit result of one dispatch cycle: either a rejection
// with a reason, or a fan-out result. Exactly one of Reason/Result is set.
type Outcome struct {
	AlertID string  `json:"alert_id,omitempty"`
	Reason  string  `json:"reason,omitempty"`
	Result  *Result `json:"result,omitempty"`
}

// Rejected reports whether the alert failed the dispatch decision.
func (o *Outcome) Rejected() bool { return o.Reason != "" }

// Tracker runs the full dispatch cycle: fetch, decide, compose, fan out.
// It never returns an error to its caller; fetch and delivery failures are
// absorbed into the outcome.
type Tracker struct {
	source     dedrone.AlertSource
	dispatcher *Dispatcher
	composer   *Composer
}

// NewTracker wires a Tracker from its collaborators.
func NewTracker(source dedrone.AlertSource, dispatcher *Dispatcher, composer *Composer) *Tracker {
	return &Tracker{source: source, dispatcher: dispatcher, composer: composer}
}

// Dispatcher exposes the zone dispatcher for registry hot-swaps.
func (t *Tracker) Dispatcher() *Dispatcher { return t.dispatcher }

// ProcessAlert fetches an alert by id and runs a dispatch cycle on it.
// A failed fetch is treated as an absent alert, not an error.
func (t *Tracker) ProcessAlert(ctx context.Context, alertID string) *Outcome {
	slog.Info("new alert", "alert_id", alertID)

	a, err := t.source.GetAlert(ctx, alertID)
	if err != nil {
		slog.Error("error during request alert by id", "alert_id", alertID, "err", err)
		a = nil
	}
	return t.process(ctx, alertID, a)
}

// ProcessPayload runs a dispatch cycle on a pre-supplied alert document.
func (t *Tracker) ProcessPayload(ctx context.Context, a *alert.Alert) *Outcome {
	var id string
	if a != nil {
		id = a.ID
	}
	return t.process(ctx, id, a)
}

func (t *Tracker) process(ctx context.Context, alertID string, a *alert.Alert) *Outcome {
	start := time.Now()

	if reason, ok := Decide(a); !ok {
		slog.Info("alert rejected", "alert_id", alertID, "reason", reason)
		metrics.AlertsRejected.WithLabelValues(reason).Inc()
		return &Outcome{AlertID: alertID, Reason: reason}
	}

	// Decide guarantees the remote detection exists past this point.
	remote, _ := a.RemoteDetection()
	n := t.composer.Compose(remote)
	res := t.dispatcher.Dispatch(ctx, a.Zones, n)

	metrics.AlertsProcessed.Inc()
	metrics.DispatchDuration.Observe(float64(time.Since(start).Milliseconds()))
	slog.Info("dispatch cycle complete",
		"alert_id", alertID,
		"zones", len(a.Zones),
		"delivered", len(res.Delivered()),
		"attempted", len(res.Entries),
	)
	return &Outcome{AlertID: alertID, Result: res}
}
