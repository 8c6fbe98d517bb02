package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dukerupert/vitrina/internal/auth"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/storage"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProfileInput updates contact details. Blank email or phone clears it.
type ProfileInput struct {
	FullName string `json:"fullName" validate:"max=128"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
}

// PasswordInput changes the password of the signed-in user.
type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=72"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// AvatarInput points the avatar at an uploaded media key.
type AvatarInput struct {
	Key string `json:"key" validate:"required,max=512"`
	Alt string `json:"alt" validate:"max=255"`
}

// ProfileService manages the profile of a signed-in user.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, userID int64, in ProfileInput) (*domain.Profile, error)
	ChangePassword(ctx context.Context, userID int64, in PasswordInput) error
	SetAvatar(ctx context.Context, userID int64, in AvatarInput) (*domain.Profile, error)
}

type profileService struct {
	repo  repository.Querier
	media storage.Resolver
}

func NewProfileService(repo repository.Querier, media storage.Resolver) ProfileService {
	return &profileService{repo: repo, media: media}
}

func (s *profileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	const op = "profile.get"

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to load profile")
	}

	return toDomainProfile(user.Username, p), nil
}

func (s *profileService) Update(ctx context.Context, userID int64, in ProfileInput) (*domain.Profile, error) {
	const op = "profile.update"

	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	p, err := s.repo.UpdateProfile(ctx, repository.UpdateProfileParams{
		UserID:   userID,
		FullName: in.FullName,
		Email:    repository.Text(in.Email),
		Phone:    repository.Text(in.Phone),
	})
	if err != nil {
		if taken := profileConflict(err); taken != nil {
			return nil, taken
		}
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to update profile")
	}

	return toDomainProfile(user.Username, p), nil
}

func (s *profileService) ChangePassword(ctx context.Context, userID int64, in PasswordInput) error {
	const op = "profile.change_password"

	if err := validateStruct(op, in); err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return domain.Internal(err, op, "failed to load user")
	}

	if err := auth.VerifyPassword(in.CurrentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.NewValidationError(op, "currentPassword", "is incorrect")
		}
		return domain.Internal(err, op, "failed to verify password")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return domain.Internal(err, op, "failed to hash password")
	}

	if err := s.repo.UpdateUserPassword(ctx, repository.UpdateUserPasswordParams{
		ID:           userID,
		PasswordHash: hash,
	}); err != nil {
		return domain.Internal(err, op, "failed to update password")
	}
	return nil
}

func (s *profileService) SetAvatar(ctx context.Context, userID int64, in AvatarInput) (*domain.Profile, error) {
	const op = "profile.set_avatar"

	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	url, err := storage.Resolve(ctx, s.media, in.Key)
	if err != nil {
		return nil, mediaError(op, "key", err)
	}

	p, err := s.repo.UpdateProfileAvatar(ctx, repository.UpdateProfileAvatarParams{
		UserID:    userID,
		AvatarUrl: pgtype.Text{String: url, Valid: true},
		AvatarAlt: strings.TrimSpace(in.Alt),
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to update avatar")
	}

	return toDomainProfile(user.Username, p), nil
}

// mediaError turns a storage failure into a field error on field, keeping
// unexpected failures internal.
func mediaError(op, field string, err error) error {
	var se *storage.StorageError
	if errors.As(err, &se) {
		return domain.NewValidationError(op, field, se.Message)
	}
	return domain.Internal(err, op, "failed to resolve media")
}

func toDomainProfile(username string, p repository.Profile) *domain.Profile {
	out := &domain.Profile{
		UserID:   p.UserID,
		Username: username,
		FullName: p.FullName,
		Email:    p.Email.String,
		Phone:    p.Phone.String,
		Balance:  p.Balance,
	}
	if p.AvatarUrl.Valid {
		out.Avatar = &domain.Image{Src: p.AvatarUrl.String, Alt: p.AvatarAlt}
	}
	return out
}
