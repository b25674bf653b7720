package dto

// ErrorResponse is the JSON body of every non-2xx reply. It mirrors the
// shared.APIError envelope the echo error handler serializes.
type ErrorResponse struct {
	Code    string `json:"code" example:"invalid_request"`
	Message string `json:"message" example:"Invalid request body"`
	Details any    `json:"details,omitempty" swaggertype:"object"`
}
