// Package mongostore implements the store contracts on a MongoDB database.
// Each aggregate maps to one collection and is saved and loaded as a single
// document; Save enforces the optimistic version check with a filtered
// replace.
package mongostore

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnect/devconnect-backend/internal/platform/logger"
)

const (
	postsCollection    = "posts"
	profilesCollection = "profiles"
	usersCollection    = "users"
)

type Store struct {
	db  *mongo.Database
	log *logger.Logger
}

func New(db *mongo.Database, baseLog *logger.Logger) *Store {
	return &Store{db: db, log: baseLog.With("store", "mongo")}
}

func (s *Store) Posts() *PostStore {
	return &PostStore{col: s.db.Collection(postsCollection), log: s.log}
}

func (s *Store) Profiles() *ProfileStore {
	return &ProfileStore{col: s.db.Collection(profilesCollection), log: s.log}
}

func (s *Store) Users() *UserStore {
	return &UserStore{col: s.db.Collection(usersCollection), log: s.log}
}
