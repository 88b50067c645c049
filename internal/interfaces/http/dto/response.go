package dto

// MessageOk is the success message of every Ok envelope
const MessageOk = "Ok"

// ErrorResponse is the error envelope: a human message plus the underlying
// error detail when one is safe to expose.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(message, detail string) ErrorResponse {
	return ErrorResponse{
		Message: message,
		Error:   detail,
	}
}

// Ok builds the success envelope, merging the given fields into
// {"message": "Ok"}.
func Ok(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	out["message"] = MessageOk
	for k, v := range fields {
		out[k] = v
	}
	return out
}
