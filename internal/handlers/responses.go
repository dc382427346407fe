package handlers

// ErrorResponse is the standard format for JSON error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
