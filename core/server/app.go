package server

import (
	"tsl-devserver/core/logger"
	"tsl-devserver/core/middleware/crossorigin"
	"tsl-devserver/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application with the global middleware chain.
// Features are registered on the returned app by the caller.
func NewApp(logg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tsl-devserver",
		DisableStartupMessage: true, // We will log our own startup message
		UnescapePath:          true, // Browsers percent-encode file names
		ErrorHandler:          crossorigin.ErrorHandler(fiber.DefaultErrorHandler),
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(logger.Middleware(logg))
	app.Use(crossorigin.New())

	return app
}
