// Package mongo provides MongoDB connection management for the application.
//
// Configuration is environment-driven and connection bootstrap retries are
// built in, so transient startup failures against a managed cluster do not
// crash the process. The package also exposes a health check function for
// readiness probes.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
