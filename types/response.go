package types

// Error codes shared across the HTTP and WebSocket surfaces
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeChatDisabled       = "CHAT_DISABLED"
	CodeInvalidAction      = "INVALID_ACTION"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidReference   = "INVALID_REFERENCE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAlreadyRated       = "ALREADY_RATED"
	CodeUserExists         = "USER_EXISTS"
	CodeWorkerNotVerified  = "WORKER_NOT_VERIFIED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeCreateError        = "CREATE_ERROR"
	CodeFetchError         = "FETCH_ERROR"
	CodeUpdateError        = "UPDATE_ERROR"
	CodeRatingError        = "RATING_ERROR"
	CodeRegistrationError  = "REGISTRATION_ERROR"
	CodeLoginError         = "LOGIN_ERROR"
)

// ErrorDetail describes a failed operation
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// APIResponse is the uniform envelope around every non-chat response
type APIResponse struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// Success wraps data in a successful envelope
func Success(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Failure wraps an error code and message in a failed envelope
func Failure(code, message string, details ...string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   &ErrorDetail{Code: code, Message: message, Details: details},
	}
}
