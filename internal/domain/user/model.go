package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Preferences struct {
	DefaultSourceLang string `json:"defaultSourceLang" example:"en"`
	DefaultTargetLang string `json:"defaultTargetLang" example:"es"`
	Theme             string `json:"theme" example:"dark"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		DefaultSourceLang: "en",
		DefaultTargetLang: "es",
		Theme:             "dark",
	}
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	Preferences  Preferences
	CreatedAt    time.Time
}

// Profile is the outward projection of a User; it never carries the password hash.
type Profile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
	}
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
