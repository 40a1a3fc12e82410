// Package userstore provides the MongoDB-backed user repository.
//
// It is the single authority on user identity: a unique index on the email
// field guarantees at most one record per address, so concurrent first
// sign-ins resolve to exactly one created user. Callers receive the package
// auth sentinel errors (ErrUserNotFound, ErrUserExists, ErrCouldNotAddUser)
// instead of driver errors.
//
// # Usage
//
//	db, err := mongo.NewDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store := userstore.New(db)
//	if err := store.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	user, err := store.FindByEmail(ctx, "ada@stevens.edu")
//	if errors.Is(err, auth.ErrUserNotFound) {
//		// first sign-in
//	}
package userstore
