package logger

// WithKV returns a new logger with a single key/value metadata pair added
func WithKV(log Logger, key string, value interface{}) Logger {
	return log.With(map[string]interface{}{key: value})
}
