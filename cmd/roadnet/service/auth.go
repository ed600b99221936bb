package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridworks/roadnet/common/apperr"
	"github.com/gridworks/roadnet/common/logger"
	"github.com/gridworks/roadnet/common/models"
)

// AuthService is the credential-handling collaborator. It hashes passwords,
// opens and closes sessions, and resolves session tokens to identities. The
// network core never sees credentials, only the resolved identity.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	log      *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, sessions SessionStore, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Register creates a new user and opens a session for it. Returns the user
// projection and the session token.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.UserProjection, string, error) {
	if username == "" || password == "" {
		return nil, "", apperr.Validation("login and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Storage(err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("registered user", "user_id", user.ID, "username", user.Username)

	return user.Projection(), token, nil
}

// Login verifies the credential pair and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.UserProjection, string, error) {
	if username == "" || password == "" {
		return nil, "", apperr.Validation("login and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Validation("bad pair login/password")
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return user.Projection(), token, nil
}

// Logout closes the session for the given token. A missing token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a session token to a caller identity. An empty, unknown or
// expired token resolves to the anonymous caller (nil identity, nil error).
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Put(ctx, token, user.Identity()); err != nil {
		return "", apperr.Storage(err)
	}
	return token, nil
}
