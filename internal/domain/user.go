package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account that can sign in.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"isStaff"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile holds the user's contact details. Email and phone are unique
// across profiles when set.
type Profile struct {
	UserID   int64           `json:"id"`
	Username string          `json:"username"`
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Balance  decimal.Decimal `json:"balance"`
	Avatar   *Image          `json:"avatar"`
}

// Session binds a cookie token to a user, or to nobody for guests.
type Session struct {
	Token     string
	UserID    *int64
	ExpiresAt time.Time
}

// Owner returns the cart owner this session stands for.
func (s *Session) Owner() Owner {
	if s.UserID != nil {
		return UserOwner(*s.UserID)
	}
	return GuestOwner(s.Token)
}
