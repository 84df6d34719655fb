package capture

import "errors"

// ErrUnexpectedResponse is returned when a call reports success without a result.
var ErrUnexpectedResponse = errors.New("capture: unexpected response")

// IsUnexpectedResponseError checks if the error is an empty-result error.
func IsUnexpectedResponseError(err error) bool {
	return errors.Is(err, ErrUnexpectedResponse)
}
