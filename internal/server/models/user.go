package models

import "time"

// User is a registered customer. Password holds the digest, never the
// plaintext.
type User struct {
	ID          int64
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Nickname    string
	IsAdult     bool
	CreatedAt   time.Time
}
