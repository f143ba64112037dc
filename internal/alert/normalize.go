package alert

// PositionDetails is the freshest known track point of a detection.
// Coordinates keep the upstream [longitude, latitude] order.
type PositionDetails struct {
	Timestamp   Timestamp
	Coordinates []float64
}

// LonLat destructures the coordinate pair. ok is false when the pair is
// missing or malformed. Latitude is the second element.
func (p PositionDetails) LonLat() (lon, lat float64, ok bool) {
	if len(p.Coordinates) < 2 {
		return 0, 0, false
	}
	return p.Coordinates[0], p.Coordinates[1], true
}

// RemoteDetection returns the first detection identified as a remote-control
// operator, or false when the alert has none.
func (a *Alert) RemoteDetection() (*Detection, bool) {
	if a == nil {
		return nil, false
	}
	for i := range a.Detections {
		if a.Detections[i].Identification.DetectionType == DetectionTypeRemote {
			return &a.Detections[i], true
		}
	}
	return nil, false
}

// LastPosition picks the last element of a position sequence. Positions are
// chronologically ordered upstream; no re-sort happens here. An empty
// sequence yields zero-valued details.
func LastPosition(positions []Position) PositionDetails {
	if len(positions) == 0 {
		return PositionDetails{}
	}
	last := positions[len(positions)-1]
	return PositionDetails{
		Timestamp:   last.Timestamp,
		Coordinates: last.GeoLocation.Coordinates,
	}
}

// AeroscopeAffected reports whether at least one sensor in the set is an
// aeroscope.
func AeroscopeAffected(sensors []Sensor) bool {
	for _, s := range sensors {
		if s.SensorType == SensorTypeAeroscope {
			return true
		}
	}
	return false
}

// Sensors returns the alert's sensor set, preferring the summary roll-up and
// falling back to the legacy affectedSensors field.
func (a *Alert) Sensors() []Sensor {
	if a == nil {
		return nil
	}
	if len(a.Summary.Sensors) > 0 {
		return a.Summary.Sensors
	}
	return a.affectedSensors
}

// AeroscopeSensor returns the first aeroscope entry of the alert's sensor
// set, or false when none participated.
func (a *Alert) AeroscopeSensor() (*Sensor, bool) {
	sensors := a.Sensors()
	for i := range sensors {
		if sensors[i].SensorType == SensorTypeAeroscope {
			return &sensors[i], true
		}
	}
	return nil, false
}
