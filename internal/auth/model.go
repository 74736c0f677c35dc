package auth

import "time"

// User is the domain entity.
type User struct {
	ID        int64
	Username  string
	Name      string
	Password  string
	CreatedAt time.Time
}

// PublicUser is what the API exposes about a user.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Name: u.Name}
}
