// Package domain defines the types and interfaces for the decode service
package domain

// Version identifies the decoding logic revision
// Bump it when tables or orchestration change so stale cache entries
// are treated as absent across deployments
const Version = 3

// Source tags who produced a Result; callers must treat it as authoritative
type Source string

// Result sources
const (
	// SourceRemote means the upstream vehicle-data service answered
	SourceRemote Source = "remote"
	// SourceOfflineFallback means the deterministic offline decoder answered
	SourceOfflineFallback Source = "offline_fallback"
	// SourceError means neither path produced usable data; a human must
	// enter the record manually
	SourceError Source = "error"
)

// Result is one decoded VIN, remote or inferred
// The Remote* fields are diagnostics carried through when the fallback
// path was triggered by an upstream failure
type Result struct {
	Source Source `json:"source"`

	Brand          string `json:"brand,omitempty"`
	Model          string `json:"model,omitempty"`
	Year           string `json:"year,omitempty"`
	YearCandidates []int  `json:"year_candidates,omitempty"`
	Trim           string `json:"trim,omitempty"`
	Engine         string `json:"engine,omitempty"`
	VehicleType    string `json:"vehicle_type,omitempty"`
	BodyClass      string `json:"body_class,omitempty"`
	PlantCountry   string `json:"plant_country,omitempty"`
	CurbWeight     string `json:"curb_weight,omitempty"`
	GVWR           string `json:"gvwr,omitempty"`

	WMI  string `json:"wmi,omitempty"`
	Note string `json:"note,omitempty"`

	RemoteStatus    int    `json:"remote_status,omitempty"`
	RemoteErrorText string `json:"remote_error_text,omitempty"`
	RemoteErrorCode string `json:"remote_error_code,omitempty"`

	Version int `json:"version"`
}

// Usable reports whether the result may auto-fill a vehicle record
func (r Result) Usable() bool {
	return r.Source == SourceRemote || r.Source == SourceOfflineFallback
}

// DecodeInput is the HTTP request body for a decode call
// Length bounds are generous on purpose; exact VIN validation happens in
// the core so the caller gets the precise reason back
type DecodeInput struct {
	VIN string `json:"vin" validate:"required,max=64"`
}
