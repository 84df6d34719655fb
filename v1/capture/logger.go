package capture

// Logger defines the logging operations used by the interceptor.
//
//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=capture
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{}) {}
