// Package auth handles principal registration, credential checks and JWT
// issuance. The rest of the system only ever sees the principal id the
// middleware extracts from a verified token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. The two cases are deliberately
// indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims is the JWT payload carried by issued tokens.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service implements registration, login and token verification.
type Service struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires an auth service instance.
func NewService(users repository.UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterInput carries the attributes of a new principal.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     models.Role
}

// Register creates a new user with a bcrypt-hashed credential. A taken
// email yields a DuplicateError.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Email == "" {
		return nil, &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if input.Password == "" {
		return nil, &models.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	if _, _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, &models.DuplicateError{Entity: "user", Key: input.Email}
	} else if !models.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleFarmer
	}

	user := models.User{
		ID:        uuid.NewString(),
		FullName:  input.FullName,
		Email:     input.Email,
		Role:      role,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}

	if err := s.users.Insert(ctx, user, string(hash)); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &user, nil
}

// Login verifies the credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, hash, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if models.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// ParseToken verifies a bearer token and returns the principal id it
// carries.
func (s *Service) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}

// Me fetches the principal's own user record.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
