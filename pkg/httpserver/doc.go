// Package httpserver wraps http.Server with graceful shutdown, environment
// configuration and a health check handler for readiness probes.
//
// # Usage
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Fatal(err)
//	}
package httpserver
