package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers all middleware on the Echo instance in order:
//  1. RequestID, so every later log line carries the ID
//  2. RequestLogger
//  3. Recover, innermost, so a recovered panic is still logged as a 500
//
// Requests to skipPaths are served but not logged.
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger, skipPaths ...string) {
	SetupWithConfig(e, log, RecoveryConfig{}, skipPaths...)
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, recoveryConfig RecoveryConfig, skipPaths ...string) {
	for _, mw := range chain(log, recoveryConfig, skipPaths) {
		e.Use(mw)
	}
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log zerolog.Logger) []echo.MiddlewareFunc {
	return chain(log, RecoveryConfig{}, nil)
}

func chain(log zerolog.Logger, recoveryConfig RecoveryConfig, skipPaths []string) []echo.MiddlewareFunc {
	loggerConfig := LoggerConfig{}
	if len(skipPaths) > 0 {
		loggerConfig.Skipper = SkipPaths(skipPaths...)
	}
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLoggerWithConfig(log, loggerConfig),
		RecoverWithConfig(log, recoveryConfig),
	}
}
