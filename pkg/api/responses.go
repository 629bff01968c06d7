package api

// CountResponse is returned by the /count endpoints.
type CountResponse struct {
	TotalCount int64 `json:"totalCount"`
}

// OverviewResponse is returned by GET /tasks/overview.
type OverviewResponse struct {
	Total      int64 `json:"total"`
	InProgress int64 `json:"inProgress"`
}

// MessageResponse confirms a mutation that returns no row.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
