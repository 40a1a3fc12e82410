// Package logger builds slog loggers from environment configuration and
// provides shared attribute helpers so log keys stay consistent across the
// application.
//
// Services accept a *slog.Logger through functional options and default to a
// discard logger, keeping logging optional in tests.
//
// # Usage
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//
//	log := logger.New(cfg, logger.WithService("unigrow"))
//	log.Info("user signed in", logger.UserID(id), logger.Provider("google"))
package logger
