package entities

import "time"

// User represents bot user and the backend session bound to it.
type User struct {
	ID        int64 // Telegram user ID
	ChatID    int64
	Token     string // TalUp bearer token, empty after logout
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(id, chatID int64, token string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		ChatID:    chatID,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasSession reports whether the user is logged in.
func (u *User) HasSession() bool {
	return u != nil && u.Token != ""
}
