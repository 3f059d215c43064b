package dto

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries every violated rule of a rejected payload.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}
