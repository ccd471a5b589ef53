package server

import (
	"net"
	"time"
)

// Config holds configuration for the HTTPS server.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8443"`
	// CertFile is the PEM-encoded certificate presented to clients.
	CertFile string `mapstructure:"cert_file" default:"https/localhost.pem"`
	// KeyFile is the PEM-encoded private key paired with CertFile.
	KeyFile string `mapstructure:"key_file" default:"https/localhost2.key"`
	// Examples lists pages advertised in the startup banner.
	Examples []string `mapstructure:"examples" default:"tsl-showcase.html,simple-tsl-example.html,index-webgpu-tsl.html"`
	// ShutdownTimeout bounds how long in-flight connections may finish after an interrupt.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"0s"`
}

// Addr returns the host:port the server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
