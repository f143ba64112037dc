// Package alert defines the canonical model for detection alerts coming from
// the Dedrone surveillance API, together with the extraction helpers the
// dispatch engine runs on it.
//
// The upstream API has gone through several schema revisions; documents in the
// wild mix current and legacy spellings (detectionType vs deviceType,
// sensorType vs type, activatedZones vs zones, zones as bare strings vs
// objects). Decoding normalizes all of them into one shape so nothing
// downstream needs to know which revision produced a document.
package alert

import (
	"encoding/json"
	"time"
)

// Discriminator values checked by the dispatch engine.
const (
	DetectionTypeRemote = "remote"
	SensorTypeAeroscope = "aeroscope"
)

// Alert is one inbound detection event document. It is decoded fresh per
// dispatch cycle and never mutated.
type Alert struct {
	ID         string      `json:"id"`
	Detections []Detection `json:"detections"`
	Zones      []Zone      `json:"-"`
	Summary    Summary     `json:"summary"`

	// affectedSensors is the pre-summary spelling of the sensor list.
	affectedSensors []Sensor
}

// Summary carries the sensor roll-up of newer alert documents.
type Summary struct {
	Sensors []Sensor `json:"sensors"`
}

// Detection is one sensed object or operator within an alert.
type Detection struct {
	Identification Identification `json:"identification"`
	Positions      []Position     `json:"positions"`
}

// Identification names and types a detection.
type Identification struct {
	DetectionType string `json:"detectionType"`
	Label         string `json:"label"`
	SerialNumber  string `json:"serialnumber"`
}

// Position is one track point of a detection. Coordinates are ordered
// [longitude, latitude] as produced upstream.
type Position struct {
	Timestamp   Timestamp   `json:"timestamp"`
	GeoLocation GeoLocation `json:"geoLocation"`
}

// GeoLocation wraps a GeoJSON-style coordinate pair.
type GeoLocation struct {
	Coordinates []float64 `json:"coordinates"`
}

// Sensor is one entry of the alert's sensor list.
type Sensor struct {
	SensorType string `json:"sensorType"`
	ID         string `json:"id"`
	Name       string `json:"name"`
}

// Zone references a notification destination by label.
type Zone struct {
	Label string `json:"label"`
}

// Timestamp decodes both RFC 3339 strings and epoch-millisecond numbers.
// The zero value means the field was absent.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UnixMilli())
}

func (a *Alert) UnmarshalJSON(data []byte) error {
	type plain struct {
		ID              string          `json:"id"`
		Detections      []Detection     `json:"detections"`
		ActivatedZones  []Zone          `json:"activatedZones"`
		Zones           []Zone          `json:"zones"`
		Summary         Summary         `json:"summary"`
		AffectedSensors json.RawMessage `json:"affectedSensors"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	a.ID = p.ID
	a.Detections = p.Detections
	a.Summary = p.Summary
	a.Zones = p.ActivatedZones
	if len(a.Zones) == 0 {
		a.Zones = p.Zones
	}
	if len(p.AffectedSensors) > 0 {
		a.affectedSensors = decodeSensorSet(p.AffectedSensors)
	}
	return nil
}

// Zones may appear as bare label strings in legacy documents.
func (z *Zone) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &z.Label)
	}
	type plain Zone
	return json.Unmarshal(data, (*plain)(z))
}

// Legacy documents carry the discriminator as deviceType, and some carry it on
// the detection itself rather than under identification.
func (d *Detection) UnmarshalJSON(data []byte) error {
	type plain struct {
		Identification Identification `json:"identification"`
		Positions      []Position     `json:"positions"`
		DetectionType  string         `json:"detectionType"`
		DeviceType     string         `json:"deviceType"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	d.Identification = p.Identification
	d.Positions = p.Positions
	if d.Identification.DetectionType == "" {
		if p.DetectionType != "" {
			d.Identification.DetectionType = p.DetectionType
		} else {
			d.Identification.DetectionType = p.DeviceType
		}
	}
	return nil
}

func (i *Identification) UnmarshalJSON(data []byte) error {
	type plain struct {
		DetectionType string `json:"detectionType"`
		DeviceType    string `json:"deviceType"`
		Label         string `json:"label"`
		SerialNumber  string `json:"serialnumber"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	i.DetectionType = p.DetectionType
	if i.DetectionType == "" {
		i.DetectionType = p.DeviceType
	}
	i.Label = p.Label
	i.SerialNumber = p.SerialNumber
	return nil
}

func (s *Sensor) UnmarshalJSON(data []byte) error {
	type plain struct {
		SensorType string `json:"sensorType"`
		Type       string `json:"type"`
		ID         string `json:"id"`
		Name       string `json:"name"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	s.SensorType = p.SensorType
	if s.SensorType == "" {
		s.SensorType = p.Type
	}
	s.ID = p.ID
	s.Name = p.Name
	return nil
}

// decodeSensorSet accepts the two legacy spellings of affectedSensors: an
// array of sensor objects, or an object keyed by sensor name. Undecodable
// input yields an empty set rather than an error.
func decodeSensorSet(raw json.RawMessage) []Sensor {
	var list []Sensor
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var byName map[string]Sensor
	if err := json.Unmarshal(raw, &byName); err == nil {
		out := make([]Sensor, 0, len(byName))
		for _, s := range byName {
			out = append(out, s)
		}
		return out
	}
	return nil
}
