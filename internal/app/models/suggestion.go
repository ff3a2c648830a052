package models

// Suggestion is an address candidate returned by the geocoding search.
type Suggestion struct {
	PlaceID     int64    `json:"place_id"`
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat,omitempty"`
	Lon         string   `json:"lon,omitempty"`
	Class       string   `json:"class,omitempty"`
	Type        string   `json:"type,omitempty"`
	Importance  float64  `json:"importance,omitempty"`
	OSMType     string   `json:"osm_type,omitempty"`
	OSMID       int64    `json:"osm_id,omitempty"`
	BoundingBox []string `json:"boundingbox,omitempty"`
}
