package dto

// ErrorInfo carries the code and message of a failed request
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope. Successful responses
// are not enveloped: lists return `{"total": N, "<plural>": [...]}`
// and creates echo the new id.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   ErrorInfo{Code: code, Message: message},
	}
}
