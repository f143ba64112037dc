// Package dispatch implements the alert interpretation and zone dispatch
// engine: deciding whether an alert warrants notification, rendering the
// message, and fanning it out to the affected zones.
package dispatch

import "github.com/vigilsky/dronewatch/internal/alert"

// Rejection reasons returned by Decide. These strings are part of the webhook
// response contract and must stay stable.
const (
	ReasonNoAlert      = "alert does not exist"
	ReasonNoZones      = "no zones were affected"
	ReasonNoDetections = "no detections property"
	ReasonNoAeroscope  = "aeroscope not involved"
	ReasonNoRemote     = "no remote detection"
	ReasonNoPositions  = "positions absent"
)

// Decide runs the precondition pipeline over an alert. Checks run in fixed
// order and the first failure wins; later checks are never evaluated.
// A failed check is a normal outcome, not an error.
func Decide(a *alert.Alert) (reason string, ok bool) {
	if a == nil {
		return ReasonNoAlert, false
	}
	if len(a.Zones) == 0 {
		return ReasonNoZones, false
	}
	if len(a.Detections) == 0 {
		return ReasonNoDetections, false
	}
	if !alert.AeroscopeAffected(a.Sensors()) {
		return ReasonNoAeroscope, false
	}
	remote, found := a.RemoteDetection()
	if !found {
		return ReasonNoRemote, false
	}
	if len(remote.Positions) == 0 {
		return ReasonNoPositions, false
	}
	return "", true
}
