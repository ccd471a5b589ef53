// Package server runs the HTTPS static file server.
//
// # Startup
//
// New checks that the certificate and key files exist before anything else
// happens. A missing file produces a *ConfigurationError carrying the openssl
// command needed to generate a self-signed pair, and no socket is bound.
// Otherwise the pair is loaded once into a TLS context owned by the Server.
//
// Listen binds host:port and wraps the listener in TLS, so plain TCP clients
// fail the handshake. Serve hands the listener to the Fiber application.
//
// # Application
//
// NewApp assembles the Fiber app with the global middleware chain:
//
//	rayid -> request log -> crossorigin -> features
//
// The crossorigin error handler guarantees that every response, 404 included,
// carries the isolation and CORS headers.
//
// # Configuration
//
// The Config struct defines the bind host and port, certificate paths, the
// example pages shown in the banner and the shutdown timeout. Defaults match
// https://localhost:8443 with https/localhost.pem and https/localhost2.key.
package server
