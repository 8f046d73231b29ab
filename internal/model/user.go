// Package model defines the data structures used throughout the application.
package model

// User represents a participant account.
//
// There is no separate registration step: a User is created the first time
// someone logs in with a username nobody has used yet, and it is never
// updated or deleted afterwards. The ID is assigned by the user repository.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
