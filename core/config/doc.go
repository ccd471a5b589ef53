// Package config provides configuration management for the dev server.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from `default` struct tags, so running
// without any configuration serves the working directory on
// https://localhost:8443 using https/localhost.pem and https/localhost2.key.
//
// # Configuration Structure
//
//   - Server: bind host and port, certificate and key paths, banner examples, shutdown timeout
//   - Static: served root directory, directory listing, index file
//   - Log: logging level and format
//
// Environment variables map onto nested keys: SERVER_PORT -> server.port,
// STATIC_ROOT -> static.root, LOG_LEVEL -> log.level.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Addr())
package config
