package alert_test

import (
	"encoding/json"
	"testing"

	"github.com/vigilsky/dronewatch/internal/alert"
)

func decode(t *testing.T, doc string) *alert.Alert {
	t.Helper()
	var a alert.Alert
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &a
}

func TestDecode_CurrentSchema(t *testing.T) {
	a := decode(t, `{
		"id": "al_1",
		"detections": [{
			"identification": {"detectionType": "remote", "label": "Mavic 3", "serialnumber": "SN-42"},
			"positions": [{"timestamp": 456, "geoLocation": {"coordinates": [30.53, 50.45]}}]
		}],
		"activatedZones": [{"label": "PPV_Monitor"}],
		"summary": {"sensors": [{"sensorType": "aeroscope"}]}
	}`)

	if len(a.Detections) != 1 {
		t.Fatalf("expected 1 detection, got %d", len(a.Detections))
	}
	if got := a.Detections[0].Identification.DetectionType; got != "remote" {
		t.Errorf("detectionType = %q", got)
	}
	if len(a.Zones) != 1 || a.Zones[0].Label != "PPV_Monitor" {
		t.Errorf("zones = %+v", a.Zones)
	}
	if !alert.AeroscopeAffected(a.Sensors()) {
		t.Error("expected aeroscope affected")
	}
}

func TestDecode_LegacySpellings(t *testing.T) {
	a := decode(t, `{
		"detections": [{"deviceType": "remote"}],
		"zones": ["zone_1", {"label": "zone_2"}],
		"affectedSensors": {"aeroscope": {"type": "aeroscope"}, "radio": {"type": "radio"}}
	}`)

	if _, ok := a.RemoteDetection(); !ok {
		t.Error("deviceType spelling should identify the remote detection")
	}
	if len(a.Zones) != 2 || a.Zones[0].Label != "zone_1" || a.Zones[1].Label != "zone_2" {
		t.Errorf("zones = %+v", a.Zones)
	}
	if !alert.AeroscopeAffected(a.Sensors()) {
		t.Error("legacy affectedSensors map should report aeroscope")
	}
}

func TestDecode_ActivatedZonesWinOverLegacy(t *testing.T) {
	a := decode(t, `{"activatedZones": [{"label": "new"}], "zones": ["old"]}`)
	if len(a.Zones) != 1 || a.Zones[0].Label != "new" {
		t.Errorf("zones = %+v", a.Zones)
	}
}

func TestRemoteDetection_FirstMatchWins(t *testing.T) {
	a := decode(t, `{"detections": [
		{"identification": {"detectionType": "drone"}},
		{"identification": {"detectionType": "remote", "serialnumber": "A"}},
		{"identification": {"detectionType": "remote", "serialnumber": "B"}}
	]}`)
	d, ok := a.RemoteDetection()
	if !ok {
		t.Fatal("expected remote detection")
	}
	if d.Identification.SerialNumber != "A" {
		t.Errorf("expected first remote entry, got %q", d.Identification.SerialNumber)
	}
}

func TestRemoteDetection_Absent(t *testing.T) {
	cases := []string{
		`{}`,
		`{"detections": []}`,
		`{"detections": [{"identification": {"detectionType": "drone"}}]}`,
	}
	for _, doc := range cases {
		if _, ok := decode(t, doc).RemoteDetection(); ok {
			t.Errorf("doc %s: expected no remote detection", doc)
		}
	}
	var nilAlert *alert.Alert
	if _, ok := nilAlert.RemoteDetection(); ok {
		t.Error("nil alert: expected no remote detection")
	}
}

func TestLastPosition_PicksLastElement(t *testing.T) {
	var positions []alert.Position
	doc := `[
		{"timestamp": 123, "geoLocation": {"coordinates": [1, 2]}},
		{"timestamp": 456, "geoLocation": {"coordinates": [3, 4]}}
	]`
	if err := json.Unmarshal([]byte(doc), &positions); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	details := alert.LastPosition(positions)
	if details.Timestamp.UnixMilli() != 456 {
		t.Errorf("timestamp = %d, want 456", details.Timestamp.UnixMilli())
	}
	lon, lat, ok := details.LonLat()
	if !ok {
		t.Fatal("expected coordinates")
	}
	// Upstream order is [longitude, latitude]; latitude is the second element.
	if lon != 3 || lat != 4 {
		t.Errorf("lon/lat = %v/%v, want 3/4", lon, lat)
	}
}

func TestLastPosition_Empty(t *testing.T) {
	details := alert.LastPosition(nil)
	if !details.Timestamp.IsZero() {
		t.Error("expected zero timestamp")
	}
	if _, _, ok := details.LonLat(); ok {
		t.Error("expected no coordinates")
	}
}

func TestTimestamp_RFC3339String(t *testing.T) {
	var p alert.Position
	if err := json.Unmarshal([]byte(`{"timestamp": "2022-07-01T12:30:00Z"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Timestamp.UTC().Hour() != 12 {
		t.Errorf("hour = %d, want 12", p.Timestamp.UTC().Hour())
	}
}

func TestAeroscopeAffected(t *testing.T) {
	cases := []struct {
		name    string
		sensors []alert.Sensor
		want    bool
	}{
		{"aeroscope present", []alert.Sensor{{SensorType: "aeroscope"}}, true},
		{"only radio", []alert.Sensor{{SensorType: "radio"}}, false},
		{"mixed", []alert.Sensor{{SensorType: "radio"}, {SensorType: "aeroscope"}}, true},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := alert.AeroscopeAffected(tc.sensors); got != tc.want {
				t.Errorf("AeroscopeAffected = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAeroscopeSensor_PrefersSummary(t *testing.T) {
	a := decode(t, `{
		"summary": {"sensors": [{"sensorType": "aeroscope", "id": "s1"}]},
		"affectedSensors": [{"type": "aeroscope", "id": "legacy"}]
	}`)
	s, ok := a.AeroscopeSensor()
	if !ok {
		t.Fatal("expected aeroscope sensor")
	}
	if s.ID != "s1" {
		t.Errorf("expected summary sensor, got %q", s.ID)
	}
}
