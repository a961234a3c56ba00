package models

// ErrorResponse is the flat error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
