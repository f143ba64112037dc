package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/dispatch"
)

// fakeSource serves canned alerts by id.
type fakeSource struct {
	alerts map[string]*alert.Alert
	err    error
}

func (f *fakeSource) GetAlert(_ context.Context, id string) (*alert.Alert, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.alerts[id]
	if !ok {
		return nil, errors.New("alert not found")
	}
	return a, nil
}

func newTracker(src *fakeSource, fn *fakeNotifier) *dispatch.Tracker {
	d := dispatch.NewDispatcher(testRegistry(), fn, 4)
	return dispatch.NewTracker(src, d, dispatch.NewComposer())
}

func TestProcessAlert_EndToEnd(t *testing.T) {
	a := &alert.Alert{
		ID:    "al_1",
		Zones: []alert.Zone{{Label: "PPV_Monitor"}, {Label: "Kinburg_Monitor"}},
		Detections: []alert.Detection{{
			Identification: alert.Identification{
				DetectionType: "remote",
				Label:         "Mavic 3",
				SerialNumber:  "SN-42",
			},
			Positions: []alert.Position{
				{GeoLocation: alert.GeoLocation{Coordinates: []float64{30.53, 50.45}}},
			},
		}},
		Summary: alert.Summary{Sensors: []alert.Sensor{{SensorType: "aeroscope"}}},
	}
	fn := &fakeNotifier{}
	tr := newTracker(&fakeSource{alerts: map[string]*alert.Alert{"al_1": a}}, fn)

	out := tr.ProcessAlert(context.Background(), "al_1")

	if out.Rejected() {
		t.Fatalf("unexpected rejection: %q", out.Reason)
	}
	entries := out.Result.Entries
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	wantZones := []string{"PPV_Monitor", "Kinburg_Monitor"}
	for i, e := range entries {
		if e.ChatID != "C1" || e.Zone != wantZones[i] {
			t.Errorf("entry[%d] = %+v", i, e)
		}
		if e.ModelLabel != "Mavic 3" || e.SerialNumber != "SN-42" {
			t.Errorf("entry[%d] metadata = %+v", i, e)
		}
	}
}

func TestProcessAlert_FetchFailureBecomesAbsent(t *testing.T) {
	tr := newTracker(&fakeSource{err: errors.New("connection refused")}, &fakeNotifier{})

	out := tr.ProcessAlert(context.Background(), "al_x")

	if !out.Rejected() || out.Reason != dispatch.ReasonNoAlert {
		t.Errorf("outcome = %+v, want rejection %q", out, dispatch.ReasonNoAlert)
	}
	if out.Result != nil {
		t.Error("rejected alert must not carry a dispatch result")
	}
}

func TestProcessPayload_Rejection(t *testing.T) {
	fn := &fakeNotifier{}
	tr := newTracker(&fakeSource{}, fn)

	out := tr.ProcessPayload(context.Background(), &alert.Alert{ID: "al_2"})

	if out.Reason != dispatch.ReasonNoZones {
		t.Errorf("reason = %q, want %q", out.Reason, dispatch.ReasonNoZones)
	}
	if len(fn.texts) != 0 {
		t.Error("rejected alert must not send messages")
	}
}
