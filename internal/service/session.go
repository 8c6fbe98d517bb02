package service

import (
	"context"
	"time"

	"github.com/dukerupert/vitrina/internal/auth"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/jackc/pgx/v5/pgtype"
)

// SessionService resolves session cookies to owners and users.
type SessionService interface {
	// Resolve returns the unexpired session for token.
	Resolve(ctx context.Context, token string) (*domain.Session, error)

	// CurrentUser returns the signed-in user behind token, or
	// ErrSessionNotFound for guest, expired or unknown tokens.
	CurrentUser(ctx context.Context, token string) (*domain.CurrentUser, error)

	// EnsureGuest returns the session for token, allocating a new guest
	// session when token is empty or no longer valid. created reports
	// whether a new cookie must be issued.
	EnsureGuest(ctx context.Context, token string) (session *domain.Session, created bool, err error)

	// Delete ends a session. Unknown tokens are ignored.
	Delete(ctx context.Context, token string) error
}

type sessionService struct {
	repo repository.Querier
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionService(repo repository.Querier, ttl time.Duration) SessionService {
	return &sessionService{repo: repo, ttl: ttl, now: time.Now}
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	row, err := s.repo.GetSession(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, domain.Internal(err, "session.resolve", "failed to load session")
	}
	return toDomainSession(row), nil
}

func (s *sessionService) CurrentUser(ctx context.Context, token string) (*domain.CurrentUser, error) {
	sess, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.UserID == nil {
		return nil, ErrSessionNotFound
	}

	user, err := s.repo.GetUserByID(ctx, *sess.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, domain.Internal(err, "session.user", "failed to load user")
	}

	return &domain.CurrentUser{ID: user.ID, Username: user.Username, IsStaff: user.IsStaff}, nil
}

func (s *sessionService) EnsureGuest(ctx context.Context, token string) (*domain.Session, bool, error) {
	sess, err := s.Resolve(ctx, token)
	if err == nil {
		return sess, false, nil
	}
	if !domain.IsCode(err, domain.ENOTFOUND) {
		return nil, false, err
	}

	sess, err = createSession(ctx, s.repo, nil, s.now().Add(s.ttl))
	if err != nil {
		return nil, false, domain.Internal(err, "session.guest", "failed to create guest session")
	}
	return sess, true, nil
}

func (s *sessionService) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, token); err != nil {
		return domain.Internal(err, "session.delete", "failed to delete session")
	}
	return nil
}

func createSession(ctx context.Context, q repository.Querier, userID *int64, expiresAt time.Time) (*domain.Session, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	row, err := q.CreateSession(ctx, repository.CreateSessionParams{
		Token:     token,
		UserID:    repository.Int8(userID),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, err
	}
	return toDomainSession(row), nil
}

func toDomainSession(row repository.Session) *domain.Session {
	return &domain.Session{
		Token:     row.Token,
		UserID:    int8Ptr(row.UserID),
		ExpiresAt: row.ExpiresAt,
	}
}

func int8Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
