package services

import (
	"context"
	"errors"
	"sync"

	"taskboard/models"
	"taskboard/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password"

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users  repository.Users
	tokens *TokenManager
	cost   int
	log    *zap.SugaredLogger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users repository.Users, tokens *TokenManager, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost, log: log.Named("auth")}
}

// Signup registers an account and signs the caller in. Email must already be
// normalized.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	_, err := s.users.UserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, conflict("Email already registered")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, internal("Error creating user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, internal("Error creating user", err)
	}

	user := &models.User{Name: name, Email: email, Password: string(hash)}
	err = s.users.CreateUser(ctx, user)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Email already registered")
	case err != nil:
		return nil, internal("Error creating user", err)
	}

	s.log.Infow("user registered", "id", user.ID)
	return s.session(user)
}

// Login checks credentials. Unknown email and wrong password look the same.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.UserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Unknown emails cost one bcrypt comparison too.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, unauthorized(invalidCredentials)
	case err != nil:
		return nil, internal("Error logging in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, unauthorized(invalidCredentials)
	}
	return s.session(user)
}

// Me loads the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.User(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("User not found")
	case err != nil:
		return nil, internal("Error fetching user", err)
	}
	return user, nil
}

// dummy returns a hash of a random password at the service's cost.
func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
		if err != nil {
			s.log.Errorw("failed to build dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) session(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, internal("Error generating token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
