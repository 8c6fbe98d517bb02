package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dukerupert/vitrina/internal/auth"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/jackc/pgx/v5/pgtype"
)

// SignUpInput is the registration form.
type SignUpInput struct {
	Username string `json:"username" validate:"required,min=3,max=150,username"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"max=128"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
}

// SignInInput is the sign-in form.
type SignInInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

// Login is the result of a successful sign-up or sign-in.
type Login struct {
	User    domain.User
	Session domain.Session
}

// UserService provides registration and authentication.
type UserService interface {
	// Register creates the user and profile together, then signs in.
	Register(ctx context.Context, in SignUpInput, guestToken string) (*Login, error)

	// SignIn verifies credentials, merges the guest cart behind guestToken
	// into the user's cart and issues a fresh session.
	SignIn(ctx context.Context, in SignInInput, guestToken string) (*Login, error)

	// SignOut deletes the session.
	SignOut(ctx context.Context, token string) error

	// CreateStaff registers a user allowed to use the admin endpoints.
	CreateStaff(ctx context.Context, username, password string) (*domain.User, error)
}

type userService struct {
	store   repository.Store
	ttl     time.Duration
	metrics *telemetry.BusinessMetrics
	now     func() time.Time
}

// NewUserService creates a new UserService instance
func NewUserService(store repository.Store, sessionTTL time.Duration, metrics *telemetry.BusinessMetrics) UserService {
	return &userService{store: store, ttl: sessionTTL, metrics: metrics, now: time.Now}
}

func (s *userService) Register(ctx context.Context, in SignUpInput, guestToken string) (*Login, error) {
	const op = "user.register"

	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	var user repository.User
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		user, err = q.CreateUser(ctx, repository.CreateUserParams{
			Username:     in.Username,
			PasswordHash: hash,
		})
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return domain.Internal(err, op, "failed to create user")
		}

		_, err = q.CreateProfile(ctx, repository.CreateProfileParams{
			UserID:   user.ID,
			FullName: in.FullName,
			Email:    repository.Text(in.Email),
			Phone:    repository.Text(in.Phone),
		})
		if err != nil {
			if taken := profileConflict(err); taken != nil {
				return taken
			}
			return domain.Internal(err, op, "failed to create profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := s.startSession(ctx, user.ID, guestToken)
	if err != nil {
		return nil, err
	}

	s.metrics.Signup()
	return &Login{User: toDomainUser(user), Session: *session}, nil
}

func (s *userService) SignIn(ctx context.Context, in SignInInput, guestToken string) (*Login, error) {
	const op = "user.sign_in"

	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			s.metrics.LoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	if err := auth.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.metrics.LoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Internal(err, op, "failed to verify password")
	}

	session, err := s.startSession(ctx, user.ID, guestToken)
	if err != nil {
		return nil, err
	}

	s.metrics.Login()
	return &Login{User: toDomainUser(user), Session: *session}, nil
}

// startSession merges the guest cart, drops the previous session and
// issues a new one, all in one transaction.
func (s *userService) startSession(ctx context.Context, userID int64, guestToken string) (*domain.Session, error) {
	const op = "user.start_session"

	var session *domain.Session
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if guestToken != "" {
			prev, err := q.GetSession(ctx, guestToken)
			switch {
			case err == nil && !prev.UserID.Valid:
				merged, err := q.MergeGuestCart(ctx, repository.MergeGuestCartParams{
					UserID:     userID,
					SessionKey: guestToken,
				})
				if err != nil {
					return domain.Internal(err, op, "failed to merge guest cart")
				}
				if _, err := q.ClearCart(ctx, repository.OwnerParams{
					SessionKey: pgtype.Text{String: guestToken, Valid: true},
				}); err != nil {
					return domain.Internal(err, op, "failed to clear guest cart")
				}
				if merged > 0 {
					s.metrics.CartMerged()
				}
			case err != nil && !repository.IsNotFound(err):
				return domain.Internal(err, op, "failed to load previous session")
			}

			if err := q.DeleteSession(ctx, guestToken); err != nil {
				return domain.Internal(err, op, "failed to delete previous session")
			}
		}

		var err error
		session, err = createSession(ctx, q, &userID, s.now().Add(s.ttl))
		if err != nil {
			return domain.Internal(err, op, "failed to create session")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *userService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, token); err != nil {
		return domain.Internal(err, "user.sign_out", "failed to delete session")
	}
	return nil
}

func (s *userService) CreateStaff(ctx context.Context, username, password string) (*domain.User, error) {
	const op = "user.create_staff"

	if err := auth.ValidatePassword(password); err != nil {
		return nil, domain.NewValidationError(op, "password", err.Error())
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	var user repository.User
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		user, err = q.CreateUser(ctx, repository.CreateUserParams{
			Username:     strings.TrimSpace(username),
			PasswordHash: hash,
			IsStaff:      true,
		})
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return domain.Internal(err, op, "failed to create user")
		}
		if _, err := q.CreateProfile(ctx, repository.CreateProfileParams{UserID: user.ID}); err != nil {
			return domain.Internal(err, op, "failed to create profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u := toDomainUser(user)
	return &u, nil
}

func toDomainUser(u repository.User) domain.User {
	return domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsStaff:      u.IsStaff,
		CreatedAt:    u.CreatedAt,
	}
}

// profileConflict maps unique violations on profile contact columns.
func profileConflict(err error) error {
	switch {
	case repository.IsUniqueViolation(err, "profiles_email_key"):
		return ErrEmailTaken
	case repository.IsUniqueViolation(err, "profiles_phone_key"):
		return ErrPhoneTaken
	case repository.IsUniqueViolation(err):
		return domain.Conflict("profile", "Contact details are already in use")
	}
	return nil
}
