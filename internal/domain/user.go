package domain

import "time"

type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Identity is the authenticated caller as established by the auth middleware.
// Only the user id is trusted from the token; display fields are always
// resolved from the user record at operation time.
type Identity struct {
	UserID string
}

// Owner is the public display projection of a user, joined onto profiles by
// reference.
type Owner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
