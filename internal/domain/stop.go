package domain

import "time"

// BusStop is a physical boarding location. The ID is scoped to the provider
// that produced it: a Kakao place id and a TAGO node id for the same physical
// stop are different strings and must not be compared across providers.
type BusStop struct {
	ID        string   `json:"id" db:"stop_id"`
	Name      string   `json:"name" db:"name"`
	Number    *string  `json:"number,omitempty" db:"number"`
	Latitude  float64  `json:"latitude" db:"latitude"`
	Longitude float64  `json:"longitude" db:"longitude"`
	Address   *string  `json:"address,omitempty" db:"address"`
	// Distance is meters from the reference coordinate at query time, either
	// provider-reported or computed locally.
	Distance *float64 `json:"distance,omitempty" db:"distance"`
	// CityCode is set when the stop came from the national aggregator, which
	// reports each candidate's own city code.
	CityCode string `json:"city_code,omitempty" db:"city_code"`
}

// Favorite is a bus stop pinned by the user, deduplicated by stop id.
type Favorite struct {
	Stop      BusStop   `json:"stop"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StopRef is a resolved provider-specific stop identifier, the precondition
// for an arrival lookup.
type StopRef struct {
	StopID   string `json:"stop_id"`
	StopName string `json:"stop_name"`
	StopNo   string `json:"stop_no,omitempty"`
}
