package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/metrics"
	"github.com/vigilsky/dronewatch/internal/notify"
	"github.com/vigilsky/dronewatch/internal/zone"
)

// EntryStatus tags the outcome of one zone's delivery attempt.
type EntryStatus string

const (
	StatusDelivered EntryStatus = "delivered"
	StatusFailed    EntryStatus = "failed"
)

// Entry is the outcome of one zone's delivery attempt. Zones whose label did
// not resolve produce no Entry at all.
type Entry struct {
	Zone         string      `json:"zone"`
	ChatID       string      `json:"chat_id"`
	ModelLabel   string      `json:"modelLabel,omitempty"`
	SerialNumber string      `json:"serialNumber,omitempty"`
	Status       EntryStatus `json:"status"`
	Error        string      `json:"error,omitempty"`
}

// Result aggregates per-zone outcomes of one dispatch cycle, in input-zone
// order.
type Result struct {
	Entries []Entry `json:"entries"`
}

// Delivered returns only the entries whose sends succeeded.
func (r *Result) Delivered() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Status == StatusDelivered {
			out = append(out, e)
		}
	}
	return out
}

// Dispatcher fans a rendered notification out to the affected zones. Each
// zone's delivery is isolated: a failed or panicking send is recorded and
// never prevents the remaining zones from being notified.
type Dispatcher struct {
	registry    atomic.Pointer[zone.Registry]
	notifier    notify.Notifier
	maxParallel int
}

// NewDispatcher creates a Dispatcher over an injected registry. maxParallel
// bounds concurrent sends; values below 1 mean sequential delivery.
func NewDispatcher(reg *zone.Registry, n notify.Notifier, maxParallel int) *Dispatcher {
	if maxParallel < 1 {
		maxParallel = 1
	}
	d := &Dispatcher{notifier: n, maxParallel: maxParallel}
	d.registry.Store(reg)
	return d
}

// SwapRegistry atomically replaces the zone registry (used on hot-reload).
// In-flight dispatch cycles keep the snapshot they started with.
func (d *Dispatcher) SwapRegistry(reg *zone.Registry) {
	d.registry.Store(reg)
}

// Registry returns the current registry snapshot.
func (d *Dispatcher) Registry() *zone.Registry {
	return d.registry.Load()
}

// Dispatch attempts delivery to every resolvable zone. Unknown labels are
// skipped silently. The result holds one entry per attempted zone, assembled
// by input index so ordering is deterministic regardless of completion order.
func (d *Dispatcher) Dispatch(ctx context.Context, zones []alert.Zone, n *Notification) *Result {
	reg := d.registry.Load()

	slots := make([]*Entry, len(zones))
	sem := make(chan struct{}, d.maxParallel)
	var wg sync.WaitGroup

	for i, z := range zones {
		addr, ok := reg.Resolve(z.Label)
		if !ok {
			metrics.ZoneDeliveries.WithLabelValues("skipped").Inc()
			slog.Debug("zone has no destination, skipping", "zone", z.Label)
			continue
		}
		wg.Add(1)
		go func(i int, label, addr string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			slots[i] = d.deliver(ctx, label, addr, n)
		}(i, z.Label, addr)
	}
	wg.Wait()

	res := &Result{Entries: make([]Entry, 0, len(zones))}
	for _, e := range slots {
		if e != nil {
			res.Entries = append(res.Entries, *e)
		}
	}
	return res
}

func (d *Dispatcher) deliver(ctx context.Context, label, addr string, n *Notification) (entry *Entry) {
	entry = &Entry{
		Zone:         label,
		ChatID:       addr,
		ModelLabel:   n.ModelLabel,
		SerialNumber: n.SerialNumber,
		Status:       StatusDelivered,
	}

	// A panicking notifier must not take sibling deliveries down with it.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("delivery panic", "zone", label, "chat_id", addr, "panic", r)
			entry.Status = StatusFailed
			entry.Error = fmt.Sprint(r)
			metrics.ZoneDeliveries.WithLabelValues("failed").Inc()
		}
	}()

	err := d.notifier.SendText(ctx, addr, n.Text, n.Options)
	if err == nil && n.HasCoordinates {
		err = d.notifier.SendLocation(ctx, addr, n.Latitude, n.Longitude)
	}
	if err != nil {
		slog.Error("failed to send message to the chat", "zone", label, "chat_id", addr, "err", err)
		entry.Status = StatusFailed
		entry.Error = err.Error()
		metrics.ZoneDeliveries.WithLabelValues("failed").Inc()
		return entry
	}

	slog.Info("coordinates sent to the chat", "zone", label, "chat_id", addr)
	metrics.ZoneDeliveries.WithLabelValues("delivered").Inc()
	return entry
}
