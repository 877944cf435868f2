package domain

import "time"

// User models a registered account. The password hash is never serialized
// and the record is immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the identity view safe to hand to clients: id and
// username only, never the hash.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{ID: u.ID, Username: u.Username}
}

// PublicUser is the minimal identity returned by login and refresh.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
