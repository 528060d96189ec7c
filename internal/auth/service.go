package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/users"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
)

const tokenLifetime = 24 * time.Hour

// Service issues session tokens. Nothing in the API is gated on them yet;
// a valid token only attributes submissions to the real user instead of
// the placeholder id.
type Service struct {
	users  users.Service
	secret []byte
}

func NewService(userService users.Service, jwtSecret string) *Service {
	return &Service{users: userService, secret: []byte(jwtSecret)}
}

// Login verifies credentials and returns a signed token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *users.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.NewValidation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", nil, apperrors.NewValidation("invalid credentials")
	}
	if err != nil {
		return "", nil, err
	}
	if !user.Active {
		return "", nil, apperrors.NewValidation("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.NewValidation("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"role": user.Role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ParseUserID extracts the subject from a token, or an error if the token
// is malformed, expired or signed with the wrong key.
func (s *Service) ParseUserID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
