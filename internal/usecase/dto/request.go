package dto

// RegionRequest asks which service region a coordinate belongs to.
type RegionRequest struct {
	Lat *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

// StopSearchRequest looks a stop up by its exact name within a region.
type StopSearchRequest struct {
	Name string   `json:"name" validate:"required,min=1"`
	Lat  *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon  *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

// NearbyStopsRequest searches stops around a coordinate.
type NearbyStopsRequest struct {
	Lat    float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"required,min=-180,max=180"`
	Radius float64 `json:"radius" validate:"omitempty,min=50,max=20000"` // meters
}

// ArrivalsRequest fetches live arrivals for a stop.
type ArrivalsRequest struct {
	StopID   string   `json:"stop_id" validate:"required"`
	StopName string   `json:"stop_name"`
	Lat      *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

// WalkingRequest computes the walking route between two coordinates.
type WalkingRequest struct {
	FromLat float64 `json:"from_lat" validate:"required,min=-90,max=90"`
	FromLon float64 `json:"from_lon" validate:"required,min=-180,max=180"`
	ToLat   float64 `json:"to_lat" validate:"required,min=-90,max=90"`
	ToLon   float64 `json:"to_lon" validate:"required,min=-180,max=180"`
}

// PlanRequest computes when to leave for a chosen bus at a stop.
type PlanRequest struct {
	StopID    string   `json:"stop_id" validate:"required"`
	StopName  string   `json:"stop_name"`
	RouteID   string   `json:"route_id" validate:"required"`
	BusChoice int      `json:"bus_choice" validate:"omitempty,oneof=1 2"`
	FromLat   float64  `json:"from_lat" validate:"required,min=-90,max=90"`
	FromLon   float64  `json:"from_lon" validate:"required,min=-180,max=180"`
	StopLat   float64  `json:"stop_lat" validate:"required,min=-90,max=90"`
	StopLon   float64  `json:"stop_lon" validate:"required,min=-180,max=180"`
	Margin    *int     `json:"margin" validate:"omitempty,min=0,max=1800"` // seconds
	Lat       *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon       *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

// FavoriteRequest adds a stop to favorites.
type FavoriteRequest struct {
	StopID   string   `json:"stop_id" validate:"required"`
	StopName string   `json:"stop_name" validate:"required"`
	StopNo   *string  `json:"stop_no"`
	Lat      float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lon      float64  `json:"lon" validate:"required,min=-180,max=180"`
	CityCode string   `json:"city_code"`
	Address  *string  `json:"address"`
	Number   *string  `json:"number"`
	Distance *float64 `json:"-"`
}

// ScheduleAlertRequest plans a departure and records it as a pending alert.
type ScheduleAlertRequest struct {
	PlanRequest
}

// SettingsRequest updates the app settings.
type SettingsRequest struct {
	DefaultRadius       int  `json:"default_radius" validate:"required,min=50,max=20000"`
	AlertAdvanceMinutes int  `json:"alert_advance_minutes" validate:"min=0,max=30"`
	AutoRefresh         bool `json:"auto_refresh"`
	RefreshInterval     int  `json:"refresh_interval" validate:"required,min=10,max=300"` // seconds
}
