package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (username, password_hash, is_staff)
VALUES ($1, $2, $3)
RETURNING id, username, password_hash, is_staff, created_at
`

type CreateUserParams struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	IsStaff      bool   `json:"is_staff"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Username, arg.PasswordHash, arg.IsStaff)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.PasswordHash,
		&i.IsStaff,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, username, password_hash, is_staff, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.PasswordHash,
		&i.IsStaff,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT id, username, password_hash, is_staff, created_at
FROM users
WHERE lower(username) = lower($1)
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.PasswordHash,
		&i.IsStaff,
		&i.CreatedAt,
	)
	return i, err
}

const updateUserPassword = `-- name: UpdateUserPassword :exec
UPDATE users SET password_hash = $2 WHERE id = $1
`

type UpdateUserPasswordParams struct {
	ID           int64  `json:"id"`
	PasswordHash string `json:"password_hash"`
}

func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.Exec(ctx, updateUserPassword, arg.ID, arg.PasswordHash)
	return err
}

const createProfile = `-- name: CreateProfile :one
INSERT INTO profiles (user_id, full_name, email, phone)
VALUES ($1, $2, $3, $4)
RETURNING user_id, full_name, email, phone, balance, avatar_url, avatar_alt
`

type CreateProfileParams struct {
	UserID   int64       `json:"user_id"`
	FullName string      `json:"full_name"`
	Email    pgtype.Text `json:"email"`
	Phone    pgtype.Text `json:"phone"`
}

func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (Profile, error) {
	row := q.db.QueryRow(ctx, createProfile, arg.UserID, arg.FullName, arg.Email, arg.Phone)
	var i Profile
	err := row.Scan(
		&i.UserID,
		&i.FullName,
		&i.Email,
		&i.Phone,
		&i.Balance,
		&i.AvatarUrl,
		&i.AvatarAlt,
	)
	return i, err
}

const getProfile = `-- name: GetProfile :one
SELECT user_id, full_name, email, phone, balance, avatar_url, avatar_alt
FROM profiles
WHERE user_id = $1
`

func (q *Queries) GetProfile(ctx context.Context, userID int64) (Profile, error) {
	row := q.db.QueryRow(ctx, getProfile, userID)
	var i Profile
	err := row.Scan(
		&i.UserID,
		&i.FullName,
		&i.Email,
		&i.Phone,
		&i.Balance,
		&i.AvatarUrl,
		&i.AvatarAlt,
	)
	return i, err
}

const updateProfile = `-- name: UpdateProfile :one
UPDATE profiles
SET full_name = $2, email = $3, phone = $4
WHERE user_id = $1
RETURNING user_id, full_name, email, phone, balance, avatar_url, avatar_alt
`

type UpdateProfileParams struct {
	UserID   int64       `json:"user_id"`
	FullName string      `json:"full_name"`
	Email    pgtype.Text `json:"email"`
	Phone    pgtype.Text `json:"phone"`
}

func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) (Profile, error) {
	row := q.db.QueryRow(ctx, updateProfile, arg.UserID, arg.FullName, arg.Email, arg.Phone)
	var i Profile
	err := row.Scan(
		&i.UserID,
		&i.FullName,
		&i.Email,
		&i.Phone,
		&i.Balance,
		&i.AvatarUrl,
		&i.AvatarAlt,
	)
	return i, err
}

const updateProfileAvatar = `-- name: UpdateProfileAvatar :one
UPDATE profiles
SET avatar_url = $2, avatar_alt = $3
WHERE user_id = $1
RETURNING user_id, full_name, email, phone, balance, avatar_url, avatar_alt
`

type UpdateProfileAvatarParams struct {
	UserID    int64       `json:"user_id"`
	AvatarUrl pgtype.Text `json:"avatar_url"`
	AvatarAlt string      `json:"avatar_alt"`
}

func (q *Queries) UpdateProfileAvatar(ctx context.Context, arg UpdateProfileAvatarParams) (Profile, error) {
	row := q.db.QueryRow(ctx, updateProfileAvatar, arg.UserID, arg.AvatarUrl, arg.AvatarAlt)
	var i Profile
	err := row.Scan(
		&i.UserID,
		&i.FullName,
		&i.Email,
		&i.Phone,
		&i.Balance,
		&i.AvatarUrl,
		&i.AvatarAlt,
	)
	return i, err
}
