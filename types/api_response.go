package types

// Response is the unified envelope returned by every API endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []string    `json:"details,omitempty"`
}

// SuccessResponse wraps data in a successful envelope.
func SuccessResponse(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// MessageResponse wraps data in a successful envelope with a user-facing
// message.
func MessageResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// ErrorResponse builds a failed envelope; details enumerates field-level
// validation messages when present.
func ErrorResponse(errMsg string, details []string) Response {
	return Response{Success: false, Error: errMsg, Details: details}
}
