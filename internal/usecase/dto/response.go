package dto

import (
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

// RegionResponse describes the detected service region. SupportMessage is
// set only when no credentialed provider serves the region.
type RegionResponse struct {
	Region         string  `json:"region"`
	DisplayName    string  `json:"display_name"`
	CityCode       string  `json:"city_code"`
	HasBIS         bool    `json:"has_bis"`
	Defaulted      bool    `json:"defaulted"`
	Supported      bool    `json:"supported"`
	SupportMessage *string `json:"support_message,omitempty"`
}

// StopResponse is a single bus stop.
type StopResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Number   *string  `json:"number,omitempty"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Address  *string  `json:"address,omitempty"`
	Distance *float64 `json:"distance,omitempty"` // meters
	CityCode string   `json:"city_code"`
}

// NearbyStopsResponse lists stops around a coordinate, nearest first.
type NearbyStopsResponse struct {
	Stops  []StopResponse `json:"stops"`
	Source string         `json:"source"`
}

// ArrivalResponse is one route's arrival summary at a stop.
type ArrivalResponse struct {
	RouteID      string `json:"route_id"`
	RouteName    string `json:"route_name"`
	RouteType    string `json:"route_type,omitempty"`
	ArrivalTime  int    `json:"arrival_time"` // seconds
	ArrivalTime2 *int   `json:"arrival_time2,omitempty"`
	LocationNo1  *int   `json:"location_no1,omitempty"`
	LocationNo2  *int   `json:"location_no2,omitempty"`
	VehicleType1 string `json:"vehicle_type1,omitempty"`
	VehicleType2 string `json:"vehicle_type2,omitempty"`
	LowPlate     bool   `json:"low_plate"`
}

// ArrivalsResponse is the normalized arrival board for a stop.
type ArrivalsResponse struct {
	StopID   string            `json:"stop_id"`
	CityCode string            `json:"city_code"`
	Source   string            `json:"source"`
	Arrivals []ArrivalResponse `json:"arrivals"`
}

// WalkingResponse is the walking route estimate.
type WalkingResponse struct {
	Distance float64 `json:"distance"` // meters
	Duration int     `json:"duration"` // seconds
	Source   string  `json:"source"`
}

// PlanResponse is the departure plan for a chosen bus.
type PlanResponse struct {
	Outcome         string     `json:"outcome"`
	DepartInSeconds int        `json:"depart_in_seconds"`
	DepartAt        *time.Time `json:"depart_at,omitempty"`
	ArrivalTime     int        `json:"arrival_time"`
	WalkingDuration int        `json:"walking_duration"`
	MarginSeconds   int        `json:"margin_seconds"`
}

// FavoriteResponse is a favorite stop with its bookmark time.
type FavoriteResponse struct {
	Stop      StopResponse `json:"stop"`
	CreatedAt time.Time    `json:"created_at"`
}

// AlertResponse is a scheduled departure alert.
type AlertResponse struct {
	ID        string     `json:"id"`
	StopID    string     `json:"stop_id"`
	StopName  string     `json:"stop_name"`
	RouteName string     `json:"route_name"`
	DepartAt  time.Time  `json:"depart_at"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
	Plan      *PlanResponse `json:"plan,omitempty"`
}

// SettingsResponse mirrors the stored app settings.
type SettingsResponse struct {
	DefaultRadius       int  `json:"default_radius"`
	AlertAdvanceMinutes int  `json:"alert_advance_minutes"`
	AutoRefresh         bool `json:"auto_refresh"`
	RefreshInterval     int  `json:"refresh_interval"`
}

// ConvertStop maps a domain stop into the transport DTO.
func ConvertStop(s domain.BusStop) StopResponse {
	return StopResponse{
		ID:       s.ID,
		Name:     s.Name,
		Number:   s.Number,
		Lat:      s.Latitude,
		Lon:      s.Longitude,
		Address:  s.Address,
		Distance: s.Distance,
		CityCode: s.CityCode,
	}
}

// ConvertStops maps a slice of domain stops, preserving order.
func ConvertStops(stops []domain.BusStop) []StopResponse {
	out := make([]StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, ConvertStop(s))
	}
	return out
}

// ConvertArrival maps a domain arrival into the transport DTO.
func ConvertArrival(a domain.BusArrival) ArrivalResponse {
	return ArrivalResponse{
		RouteID:      a.RouteID,
		RouteName:    a.RouteName,
		RouteType:    a.RouteType,
		ArrivalTime:  a.ArrivalTime,
		ArrivalTime2: a.ArrivalTime2,
		LocationNo1:  a.LocationNo1,
		LocationNo2:  a.LocationNo2,
		VehicleType1: a.VehicleType1,
		VehicleType2: a.VehicleType2,
		LowPlate:     a.LowPlate,
	}
}

// ConvertBoard maps a full arrival board.
func ConvertBoard(board *domain.ArrivalBoard) *ArrivalsResponse {
	arrivals := make([]ArrivalResponse, 0, len(board.Arrivals))
	for _, a := range board.Arrivals {
		arrivals = append(arrivals, ConvertArrival(a))
	}
	return &ArrivalsResponse{
		StopID:   board.StopID,
		CityCode: board.CityCode,
		Source:   string(board.Source),
		Arrivals: arrivals,
	}
}

// ConvertPlan maps a domain departure plan.
func ConvertPlan(p *domain.DeparturePlan) *PlanResponse {
	return &PlanResponse{
		Outcome:         string(p.Outcome),
		DepartInSeconds: p.DepartInSeconds,
		DepartAt:        p.DepartAt,
		ArrivalTime:     p.ArrivalTime,
		WalkingDuration: p.WalkingDuration,
		MarginSeconds:   p.MarginSeconds,
	}
}

// ConvertSettings maps stored settings into the response DTO.
func ConvertSettings(s domain.AppSettings) SettingsResponse {
	return SettingsResponse{
		DefaultRadius:       s.DefaultRadius,
		AlertAdvanceMinutes: s.AlertAdvanceMinutes,
		AutoRefresh:         s.AutoRefresh,
		RefreshInterval:     s.RefreshInterval,
	}
}
