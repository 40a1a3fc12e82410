// Package tokenstore provides the Redis-backed session token store and the
// OAuth state store.
//
// Tokens are stored as JSON under an opaque random key; the key is what the
// browser carries in its cookie, so the credential payload never leaves the
// server. OAuth state tokens live under a separate prefix with a short TTL
// and are consumed atomically on callback.
//
// # Usage
//
//	rdb, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store := tokenstore.New(rdb, tokenstore.Config{TokenTTL: 720 * time.Hour})
//
//	key, err := store.Issue(ctx, token)
//	if err != nil {
//		log.Fatal(err)
//	}
package tokenstore
