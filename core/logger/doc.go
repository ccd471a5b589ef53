// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for console (development) or JSON
// output and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs related to a specific request can be correlated.
// Middleware uses it to emit one line per served request.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	app.Use(logger.Middleware(log))
package logger
