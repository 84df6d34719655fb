package segment

// CauseType classifies an HTTP outcome for the error and fault flags.
type CauseType string

const (
	// CauseNone means the status code carries neither an error nor a fault.
	CauseNone CauseType = ""
	// CauseError marks client side failures (4xx).
	CauseError CauseType = "error"
	// CauseFault marks server side failures (5xx).
	CauseFault CauseType = "fault"
)

// CauseFromHTTPStatus maps a status code to its cause. Codes outside 400-599,
// including 0 for a missing status, map to CauseNone.
func CauseFromHTTPStatus(status int) CauseType {
	switch {
	case status >= 400 && status < 500:
		return CauseError
	case status >= 500 && status < 600:
		return CauseFault
	default:
		return CauseNone
	}
}
