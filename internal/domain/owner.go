package domain

import "strconv"

// OwnerKind distinguishes the two identities that can own a cart or an order.
type OwnerKind int

const (
	OwnerGuest OwnerKind = iota + 1
	OwnerUser
)

// Owner scopes cart lines and orders. It is either an authenticated user or
// an anonymous guest session, never both. The zero value owns nothing.
type Owner struct {
	kind       OwnerKind
	userID     int64
	sessionKey string
}

// UserOwner returns the owner for an authenticated user.
func UserOwner(id int64) Owner {
	return Owner{kind: OwnerUser, userID: id}
}

// GuestOwner returns the owner for an anonymous session token.
func GuestOwner(sessionKey string) Owner {
	return Owner{kind: OwnerGuest, sessionKey: sessionKey}
}

func (o Owner) Kind() OwnerKind { return o.kind }

func (o Owner) IsZero() bool { return o.kind == 0 }

func (o Owner) IsUser() bool { return o.kind == OwnerUser }

func (o Owner) IsGuest() bool { return o.kind == OwnerGuest }

// UserID returns the user id and true when the owner is a user.
func (o Owner) UserID() (int64, bool) {
	return o.userID, o.kind == OwnerUser
}

// SessionKey returns the session token and true when the owner is a guest.
func (o Owner) SessionKey() (string, bool) {
	return o.sessionKey, o.kind == OwnerGuest
}

// String is safe to log: guest tokens are truncated.
func (o Owner) String() string {
	switch o.kind {
	case OwnerUser:
		return "user:" + strconv.FormatInt(o.userID, 10)
	case OwnerGuest:
		key := o.sessionKey
		if len(key) > 8 {
			key = key[:8]
		}
		return "guest:" + key
	default:
		return "none"
	}
}
