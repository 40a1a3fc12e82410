// Package config loads environment-based configuration structs.
//
// Each subsystem declares its own struct with `env` tags and loads it through
// Load or MustLoad. A .env file, when present, is read once before the first
// parse so local development does not need exported variables. Loaded configs
// are cached per type, so repeated loads of the same struct are cheap and
// always observe the same values.
//
// # Usage
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
