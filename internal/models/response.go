package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// DecisionResponse wraps an entitlement denial. It travels as HTTP 200 so
// the client renders an upgrade prompt rather than an error page.
func DecisionResponse(d Decision, message string) Response {
	return Response{
		Success: false,
		Message: message,
		Data:    d,
	}
}
