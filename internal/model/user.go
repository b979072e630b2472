package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents an account stored in the `users` collection.  Password
// holds the bcrypt hash and is never serialized to JSON.  Email is unique,
// enforced by an index created at start-up.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
}

// UserProfile is the public view of a user returned by the API.
type UserProfile struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	IsAdmin bool               `json:"isAdmin"`
}

// Profile strips the password hash.
func (u User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
