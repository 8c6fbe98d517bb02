package repository

import (
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

// OwnerArgs converts a domain owner into the nullable column pair used by
// owner-scoped queries.
func OwnerArgs(owner domain.Owner) OwnerParams {
	var p OwnerParams
	if id, ok := owner.UserID(); ok {
		p.UserID = pgtype.Int8{Int64: id, Valid: true}
	}
	if key, ok := owner.SessionKey(); ok {
		p.SessionKey = pgtype.Text{String: key, Valid: true}
	}
	return p
}

// Int8 wraps an optional id for a nullable bigint parameter.
func Int8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

// Text maps "" to NULL.
func Text(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
