package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yuvi55/unigrow/auth"
	"github.com/yuvi55/unigrow/onboarding"
)

// Collection is the MongoDB collection holding user records.
const Collection = "users"

// Store is the MongoDB implementation of the user repository.
type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

// New creates a user store bound to the users collection of db.
func New(db *mongo.Database) *Store {
	return &Store{
		coll: db.Collection(Collection),
		now:  time.Now,
	}
}

// EnsureIndexes creates the unique email index. The index is what turns a
// concurrent duplicate insert into ErrUserExists instead of a second record.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// FindByEmail returns the user record for the email, or auth.ErrUserNotFound.
func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// FindByEmailAndID returns the record matching both the email and the
// provider subject id, or auth.ErrUserNotFound.
func (s *Store) FindByEmailAndID(ctx context.Context, email, id string) (*auth.User, error) {
	var u auth.User
	err := s.coll.FindOne(ctx, bson.M{"email": email, "_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email and id: %w", err)
	}
	return &u, nil
}

// Insert stores a new user record. A duplicate email surfaces as
// auth.ErrUserExists so the caller can re-fetch the record that won the race.
func (s *Store) Insert(ctx context.Context, u *auth.User) error {
	res, err := s.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return auth.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if res.InsertedID == nil {
		return auth.ErrCouldNotAddUser
	}
	return nil
}

// CompleteOnboarding writes the onboarding answers and flips the user to
// onboarded in a single update. Returns auth.ErrUserNotFound when no record
// matches the id.
func (s *Store) CompleteOnboarding(ctx context.Context, userID string, upd onboarding.Update) error {
	res, err := s.coll.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"isOnboarded":        true,
			"updatedAt":          s.now().UTC(),
			"major":              upd.Major,
			"joiningTerm":        upd.JoiningTerm,
			"canvasToken_hashed": upd.EncryptedToken,
			"avatar_url":         upd.AvatarURL,
			"courses":            upd.Courses,
			"graduationDate":     upd.GraduationDate,
		},
	})
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

var (
	_ auth.UserStore       = (*Store)(nil)
	_ onboarding.UserStore = (*Store)(nil)
)
