package models

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope wrapped around every successful API response.
type Response struct {
	Status  string         `json:"status"`
	Results *int           `json:"results,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ErrorResponse is the envelope written by the error handler for any failure.
type ErrorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

// NewResponse wraps a single value under key.
func NewResponse(key string, value any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   map[string]any{key: value},
	}
}

// NewListResponse wraps a collection under key and reports its length.
func NewListResponse(key string, records []Record) Response {
	if records == nil {
		records = []Record{}
	}
	n := len(records)
	return Response{
		Status:  StatusSuccess,
		Results: &n,
		Data:    map[string]any{key: records},
	}
}
