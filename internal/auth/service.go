package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-backend/internal/errs"
	"chat-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingCredential = errs.Unauthenticated("Authentication required")
	ErrInvalidCredential = errs.Unauthenticated("Authentication failed")
)

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Claims carries the principal fields issued by the identity service.
type Claims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	users     UserLookup
	secret    []byte
	expiresIn time.Duration
}

func NewService(users UserLookup, secret []byte, expiresIn time.Duration) *Service {
	return &Service{
		users:     users,
		secret:    secret,
		expiresIn: expiresIn,
	}
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// VerifyCredential validates the bearer token and checks that the user it
// names still exists and has a verified email.
func (s *Service) VerifyCredential(ctx context.Context, tokenString string) (*models.Principal, error) {
	if tokenString == "" {
		return nil, ErrMissingCredential
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	user, err := s.users.GetUserByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s not found", ErrInvalidCredential, claims.ID)
		}
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	if !user.IsVerified {
		return nil, fmt.Errorf("%w: user %s not verified", ErrInvalidCredential, claims.ID)
	}

	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}
	return &models.Principal{ID: user.ID, Email: user.Email, Role: role}, nil
}

// GenerateToken mints a token for p. Tokens are normally issued by the
// identity service; this is used by tooling and tests.
func (s *Service) GenerateToken(p models.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    p.ID,
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
