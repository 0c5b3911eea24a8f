package domain

import "time"

// Actor is the identity performing an action. Administrators bypass all
// permission checks; regular actors are governed by their PermissionMatrix.
type Actor struct {
	ID              string `json:"id"`
	IsAdministrator bool   `json:"is_admin"`
}

// User models a console account. The Actor embedded in a session token is a
// projection of this record.
type User struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	IsAdministrator bool      `json:"is_admin"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Actor returns the authorization identity for this user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, IsAdministrator: u.IsAdministrator}
}
