package model

import "time"

// User represents a registered customer or store account.
type User struct {
	ID           int64
	Name         string
	Address      string
	BirthDate    *time.Time
	Email        string
	PasswordHash string
	IsStore      bool
	ExternalID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PendingCompletion reports whether the account was created without credentials
// and still awaits profile completion.
func (u *User) PendingCompletion() bool {
	return u.PasswordHash == ""
}

// NewUser carries fields required to insert a user record.
type NewUser struct {
	Name         string
	Address      string
	BirthDate    *time.Time
	Email        string
	PasswordHash string
	IsStore      bool
	ExternalID   *string
}

// Registration is the input of direct sign-up.
type Registration struct {
	Name      string
	Address   string
	BirthDate string
	Email     string
	Password  string
	IsStore   bool
}

// ProfileCompletion is the input of the one-shot profile completion step.
type ProfileCompletion struct {
	UserID    int64
	Password  string
	IsStore   *bool
	BirthDate string
}

// Session is the outcome of a successful authentication.
type Session struct {
	Token string
	User  *User
}
