package domain

// ErrorResponse is the JSON envelope for failed requests.
type ErrorResponse struct {
	Message string `json:"error"`
}

// MessageResponse is the JSON envelope for simple success messages.
type MessageResponse struct {
	Message string `json:"message"`
}
