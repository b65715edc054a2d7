package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

const tokenType = "bearer"

// AuthService authenticates the single operator and issues the bearer tokens
// every other endpoint requires.
type AuthService struct {
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var ErrOperatorPasswordRequired = errors.New("operator password must not be empty")

func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// EnsureOperator creates the operator account when it does not exist yet.
// An existing account is left untouched.
func (s *AuthService) EnsureOperator(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return false, err
	}

	if _, err := s.SetOperatorPassword(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}

// SetOperatorPassword creates the operator or replaces its password.
func (s *AuthService) SetOperatorPassword(ctx context.Context, username, password string) (*model.User, error) {
	if password == "" {
		return nil, ErrOperatorPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Save(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Msg("operator credentials stored")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			log.Error().Err(err).Str("username", username).Msg("failed to load user")
			return nil, apperrors.RetrievalFailed("user", err)
		}
		log.Warn().Str("username", username).Msg("authentication failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("authentication failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign access token")
		return nil, apperrors.ErrUnauthorized
	}

	return &dto.TokenResponse{AccessToken: token, TokenType: tokenType}, nil
}

func (s *AuthService) IssueToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken validates a bearer token and returns the username it was
// issued to.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		return "", apperrors.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.UserNotFound(username)
		}
		return nil, apperrors.RetrievalFailed("user", err)
	}
	return user, nil
}
