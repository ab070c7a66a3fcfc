package main

// Request/response DTOs. Keep them minimal and explicit.

type analyzeFieldReq struct {
	Geometry map[string]any `json:"geometry"` // GeoJSON Polygon
}

// envelope is the one response shape every endpoint uses, success or
// failure. Data is omitted on failure.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

type healthStatus struct {
	GEEInitialized bool   `json:"gee_initialized"`
	Version        string `json:"version"`
}
