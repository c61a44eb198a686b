package irrigation_gateway

// Response is the single envelope every gateway operation returns.
// Success responses carry Data, failures carry Error; the two never mix.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// Cause keeps the classified error for the transport layer (status codes, logs).
	Cause error `json:"-"`
}

// Succeeded builds a success envelope.
func Succeeded(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Failed builds a failure envelope. detail is the caller-facing error text;
// cause is kept for classification only.
func Failed(message, detail string, cause error) Response {
	return Response{Success: false, Message: message, Error: detail, Cause: cause}
}
