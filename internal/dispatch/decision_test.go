package dispatch_test

import (
	"testing"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/dispatch"
)

// eligibleAlert builds an alert that passes every precondition. Tests knock
// out one field at a time to hit each rejection.
func eligibleAlert() *alert.Alert {
	return &alert.Alert{
		ID:    "al_1",
		Zones: []alert.Zone{{Label: "PPV_Monitor"}},
		Detections: []alert.Detection{{
			Identification: alert.Identification{DetectionType: "remote"},
			Positions:      []alert.Position{{GeoLocation: alert.GeoLocation{Coordinates: []float64{30.53, 50.45}}}},
		}},
		Summary: alert.Summary{Sensors: []alert.Sensor{{SensorType: "aeroscope"}}},
	}
}

func TestDecide_Pass(t *testing.T) {
	reason, ok := dispatch.Decide(eligibleAlert())
	if !ok {
		t.Fatalf("expected pass, got reason %q", reason)
	}
}

func TestDecide_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*alert.Alert)
		want   string
	}{
		{
			"no zones",
			func(a *alert.Alert) { a.Zones = nil },
			dispatch.ReasonNoZones,
		},
		{
			"no detections",
			func(a *alert.Alert) { a.Detections = nil },
			dispatch.ReasonNoDetections,
		},
		{
			"aeroscope not involved",
			func(a *alert.Alert) { a.Summary.Sensors = []alert.Sensor{{SensorType: "radio"}} },
			dispatch.ReasonNoAeroscope,
		},
		{
			"no remote detection",
			func(a *alert.Alert) { a.Detections[0].Identification.DetectionType = "drone" },
			dispatch.ReasonNoRemote,
		},
		{
			"no positions",
			func(a *alert.Alert) { a.Detections[0].Positions = nil },
			dispatch.ReasonNoPositions,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := eligibleAlert()
			tc.mutate(a)
			reason, ok := dispatch.Decide(a)
			if ok {
				t.Fatal("expected rejection")
			}
			if reason != tc.want {
				t.Errorf("reason = %q, want %q", reason, tc.want)
			}
		})
	}
}

func TestDecide_NilAlert(t *testing.T) {
	reason, ok := dispatch.Decide(nil)
	if ok || reason != dispatch.ReasonNoAlert {
		t.Errorf("Decide(nil) = %q, %v", reason, ok)
	}
}

// The pipeline short-circuits: with several preconditions missing, the
// earliest check's reason wins.
func TestDecide_FirstFailureWins(t *testing.T) {
	a := eligibleAlert()
	a.Zones = nil
	a.Detections = nil
	a.Summary.Sensors = nil

	reason, _ := dispatch.Decide(a)
	if reason != dispatch.ReasonNoZones {
		t.Errorf("reason = %q, want %q", reason, dispatch.ReasonNoZones)
	}
}
