package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salestracker/internal/models"
	"salestracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 30 * time.Minute

// AuthConfig carries the signing secret and token lifetime. Loaded once at
// process start and immutable afterwards.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Identity is the resolved subject of a verified token.
type Identity struct {
	Username string
	Role     models.Role
}

// Claims defines JWT claims: Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthService handles user auth logic
type AuthService struct {
	userRepo repository.Users
	cfg      AuthConfig
}

func NewAuthService(repo repository.Users, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{userRepo: repo, cfg: cfg}
}

// Register hashes the password and creates a new user. A duplicate username
// always surfaces as ErrDuplicateUser, even when the store-level uniqueness
// constraint is what caught it under concurrent registration.
func (s *AuthService) Register(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.userRepo.Create(ctx, username, hash, role)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return &models.User{ID: id, Username: username, Role: role}, nil
}

// Login validates credentials and returns a signed token plus the user's
// role. Unknown username and wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.Role, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if u == nil {
		return "", "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u.Username, u.Role)
	if err != nil {
		return "", "", fmt.Errorf("issue token for %q: %w", username, err)
	}
	return token, u.Role, nil
}

// ParseToken verifies a JWT and returns the identity it encodes. Missing,
// malformed, tampered and expired tokens all fail the same way.
func (s *AuthService) ParseToken(accessToken string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{Username: claims.Subject, Role: models.Role(claims.Role)}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT carrying username and role
func (s *AuthService) issueToken(username string, role models.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(role),
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
