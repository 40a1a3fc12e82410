// Package redis provides helpers for connecting to the Redis server that
// backs token persistence.
//
// Connect retries the connection using the supplied configuration, and
// Healthcheck integrates Redis into HTTP readiness probes. Configuration is
// described by the Config struct populated from environment variables.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
package redis
