package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Text is a JSON scalar kept as text. Models return prices, ratings and
// durations as numbers or strings interchangeably.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

func (t Text) String() string { return string(t) }

// GeoCoordinates accepts {"latitude":..,"longitude":..}, {"lat":..,"lng":..},
// [lat, lon] and "lat, lon". Anything else unparseable is kept in Raw.
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Raw       string  `json:"raw,omitempty"`
}

func (g *GeoCoordinates) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*g = GeoCoordinates{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch b[0] {
	case '{':
		f, err := decodeFields(b)
		if err != nil {
			return err
		}
		var lat, lon Text
		if err := f.decode(&lat, "latitude", "lat"); err != nil {
			return err
		}
		if err := f.decode(&lon, "longitude", "lng", "lon", "long"); err != nil {
			return err
		}
		g.setPair(string(lat), string(lon))
	case '[':
		var pair []Text
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) == 2 {
			g.setPair(string(pair[0]), string(pair[1]))
		} else {
			g.Raw = string(b)
		}
	default:
		var t Text
		if err := t.UnmarshalJSON(b); err != nil {
			return err
		}
		parts := strings.Split(string(t), ",")
		if len(parts) == 2 {
			g.setPair(parts[0], parts[1])
		} else {
			g.Raw = string(t)
		}
	}
	return nil
}

func (g *GeoCoordinates) setPair(lat, lon string) {
	if strings.TrimSpace(lat) == "" && strings.TrimSpace(lon) == "" {
		return
	}
	la, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lo, errLon := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if errLat != nil || errLon != nil {
		g.Raw = strings.TrimSpace(lat) + ", " + strings.TrimSpace(lon)
		return
	}
	g.Latitude, g.Longitude = la, lo
}

func (g GeoCoordinates) IsZero() bool {
	return g.Latitude == 0 && g.Longitude == 0 && g.Raw == ""
}

func (g GeoCoordinates) String() string {
	if g.Raw != "" {
		return g.Raw
	}
	if g.IsZero() {
		return ""
	}
	return fmt.Sprintf("%.6f, %.6f", g.Latitude, g.Longitude)
}
