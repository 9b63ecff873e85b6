// Package models holds the shared value types passed between the store, the
// HTTP API, and the CLI.
package models

import "time"

// Location is one classified place: its year of monthly observations and the
// classification computed from them. The monthly series are the raw inputs,
// unmodified; reclassifying a location means building a new record from them.
type Location struct {
	Name      string    `json:"name"`
	Southern  bool      `json:"southern"`
	Precip    []float64 `json:"precip"`
	Temp      []float64 `json:"temp"`
	Code      string    `json:"code"`
	Threshold float64   `json:"threshold"`
	TempMean  float64   `json:"temp_mean"`
	PrecipSum float64   `json:"precip_sum"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
