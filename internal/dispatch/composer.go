package dispatch

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vigilsky/dronewatch/internal/alert"
	"github.com/vigilsky/dronewatch/internal/notify"
)

// Notification is the rendered content delivered to every affected zone.
type Notification struct {
	Text           string
	Latitude       float64
	Longitude      float64
	HasCoordinates bool
	ModelLabel     string
	SerialNumber   string
	Options        *notify.SendOptions
}

// Composer renders notification text with timestamps in a fixed regional
// timezone.
type Composer struct {
	loc *time.Location
}

// NewComposer creates a Composer rendering times in the Kyiv timezone.
// Falls back to UTC when tzdata is unavailable.
func NewComposer() *Composer {
	loc, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		loc = time.UTC
	}
	return &Composer{loc: loc}
}

// Compose renders the operator-detected message from a remote detection.
// Missing optional fields degrade to empty substitutions; Compose never
// fails on alert shape.
func (c *Composer) Compose(remote *alert.Detection) *Notification {
	pos := alert.LastPosition(remote.Positions)
	lon, lat, hasCoords := pos.LonLat()

	var when string
	if !pos.Timestamp.IsZero() {
		when = pos.Timestamp.In(c.loc).Format("02.01.2006, 15:04:05")
	}

	var latText, lonText string
	if hasCoords {
		latText = strconv.FormatFloat(lat, 'f', -1, 64)
		lonText = strconv.FormatFloat(lon, 'f', -1, 64)
	}

	n := &Notification{
		Latitude:       lat,
		Longitude:      lon,
		HasCoordinates: hasCoords,
		ModelLabel:     remote.Identification.Label,
		SerialNumber:   remote.Identification.SerialNumber,
		Options:        &notify.SendOptions{ParseMode: "HTML"},
	}

	n.Text = fmt.Sprintf(
		"❗️❗️❗️\n<b>Виявлено оператора ворожого БПЛА</b>\n\nЧас: %s\nКоординати: <b>%s %s</b>\nМодель: %s\nСерійний номер: %s",
		when, latText, lonText, n.ModelLabel, n.SerialNumber,
	)

	if hasCoords {
		n.Options.ReplyMarkup = &notify.ReplyMarkup{
			InlineKeyboard: [][]notify.InlineButton{{{
				Text: "Переглянути у Гугл мапі",
				URL:  fmt.Sprintf("http://www.google.com/maps/place/%s,%s", latText, lonText),
			}}},
		}
	}

	return n
}
