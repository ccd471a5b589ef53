// Package servertest provides fixtures for tests that need a running TLS server.
package servertest
