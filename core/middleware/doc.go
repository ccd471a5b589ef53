// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - CrossOrigin: Stamps the cross-origin isolation (COOP/COEP) and CORS headers
//     that browsers require before enabling WebGPU and SharedArrayBuffer. The
//     headers are applied to every response, including error responses.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// These middleware components are registered globally in the application setup
// (see core/server.NewApp).
package middleware
