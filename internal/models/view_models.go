package models

import "time"

// ViewSnapshot is the per-session UI state kept between requests.
// It never carries restaurant data.
type ViewSnapshot struct {
	SessionID string      `json:"session_id"`
	Filters   FilterState `json:"filters"`
	Cursor    int         `json:"cursor"`
	Mounted   bool        `json:"mounted"`
	UpdatedAt time.Time   `json:"updated_at"`
}
