package crossorigin

import "github.com/gofiber/fiber/v2"

// Header is a single response header name and value.
type Header struct {
	Key   string
	Value string
}

// DefaultHeaders isolates the page (COOP/COEP) and opens it to any origin (CORS).
var DefaultHeaders = []Header{
	{Key: "Cross-Origin-Embedder-Policy", Value: "require-corp"},
	{Key: "Cross-Origin-Opener-Policy", Value: "same-origin"},
	{Key: fiber.HeaderAccessControlAllowOrigin, Value: "*"},
	{Key: fiber.HeaderAccessControlAllowMethods, Value: "GET, POST, OPTIONS"},
	{Key: fiber.HeaderAccessControlAllowHeaders, Value: "Content-Type"},
}

// Config defines the headers stamped on every response.
type Config struct {
	// Headers overrides DefaultHeaders when non-empty.
	Headers []Header
}

func configDefault(config ...Config) Config {
	if len(config) == 0 || len(config[0].Headers) == 0 {
		return Config{Headers: DefaultHeaders}
	}
	return config[0]
}

// New returns a middleware that sets the configured headers before and after
// the rest of the chain runs, overriding anything a handler set.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	return func(c *fiber.Ctx) error {
		Apply(c, cfg.Headers)
		err := c.Next()
		Apply(c, cfg.Headers)
		return err
	}
}

// ErrorHandler wraps next so that error responses carry the headers too.
// Handlers such as the file server may reset the response before failing.
func ErrorHandler(next fiber.ErrorHandler, config ...Config) fiber.ErrorHandler {
	cfg := configDefault(config...)
	if next == nil {
		next = fiber.DefaultErrorHandler
	}
	return func(c *fiber.Ctx, err error) error {
		herr := next(c, err)
		Apply(c, cfg.Headers)
		return herr
	}
}

// Apply sets headers on the response.
func Apply(c *fiber.Ctx, headers []Header) {
	for _, h := range headers {
		c.Set(h.Key, h.Value)
	}
}
