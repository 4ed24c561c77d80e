package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names (must match any consumer outside this service)
const (
	StreamAlertDue  = "stream:busalert:due"
	StreamStopWatch = "stream:busalert:watch"
)

// AlertHistoryCap bounds the stored alert history, newest first.
const AlertHistoryCap = 50

// AlertHistoryItem records one scheduled departure alert.
type AlertHistoryItem struct {
	ID            uuid.UUID `json:"id" db:"id"`
	StopID        string    `json:"stop_id" db:"stop_id"`
	StopName      string    `json:"stop_name" db:"stop_name"`
	RouteName     string    `json:"route_name" db:"route_name"`
	DepartAt      time.Time `json:"depart_at" db:"depart_at"`
	DelaySeconds  int       `json:"delay_seconds" db:"delay_seconds"`
	Completed     bool      `json:"completed" db:"completed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// AlertDueEvent is published to the due-alert stream when a scheduled alert
// should fire. The notification transport on the consumer side is opaque to
// this service.
type AlertDueEvent struct {
	AlertID   uuid.UUID `json:"alert_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	FireAfter int       `json:"fire_after_seconds"`
}

// WatchEvent tells the refresh worker to start or stop keeping a stop's
// arrival board warm. Re-watching a stop replaces the previous watch.
type WatchEvent struct {
	StopID   string   `json:"stop_id"`
	StopName string   `json:"stop_name,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Unwatch  bool     `json:"unwatch,omitempty"`
}

// StreamMessage is one raw entry read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data string
}

// AppSettings is the flat user settings object, merged over defaults on read.
type AppSettings struct {
	DefaultRadius       int  `json:"default_radius"`        // meters
	AlertAdvanceMinutes int  `json:"alert_advance_minutes"`
	AutoRefresh         bool `json:"auto_refresh"`
	RefreshInterval     int  `json:"refresh_interval"` // seconds
}

// DefaultSettings returns the settings used until the user changes anything.
func DefaultSettings() AppSettings {
	return AppSettings{
		DefaultRadius:       1000,
		AlertAdvanceMinutes: 1,
		AutoRefresh:         true,
		RefreshInterval:     30,
	}
}
