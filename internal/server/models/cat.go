package models

import "time"

// Cat is a registered cat record. Owner is always the id of the principal
// that created the record; Filename references a previously uploaded image.
type Cat struct {
	ID        int64     `json:"cat_id"`
	Name      string    `json:"cat_name"`
	Weight    float64   `json:"weight"`
	Owner     int64     `json:"owner"`
	Filename  string    `json:"filename"`
	Birthdate time.Time `json:"birthdate"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
}

// Coordinates is a latitude/longitude pair derived from the request by the
// geolocation collaborator, never from the payload body.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
