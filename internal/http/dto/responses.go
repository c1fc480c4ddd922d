package dto

// SuccessResponse is the envelope for every 2xx answer.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorDetail carries the machine-readable code alongside the message.
type ErrorDetail struct {
	Code string `json:"code"`
}

// ErrorResponse is the envelope for every failure. Errors is only set for
// validation failures and maps field names to their problems.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   *ErrorDetail        `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func OK(message string, data any) SuccessResponse {
	return SuccessResponse{Success: true, Message: message, Data: data}
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

type AuthData struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// RegisterData is the registration payload: the account can use its token
// right away, but stays unverified until the emailed code is confirmed.
type RegisterData struct {
	Token                     string `json:"token"`
	User                      any    `json:"user"`
	RequiresEmailVerification bool   `json:"requires_email_verification"`
}

type ListData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
