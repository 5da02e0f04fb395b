package response

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type InfoResponse struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
	ServiceURL  string `json:"service_url"`
	Debug       bool   `json:"debug"`
}

// ErrorResponse documents the plain error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ProblemResponse documents the structured error body.
type ProblemResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}
