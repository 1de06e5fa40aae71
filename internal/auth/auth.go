package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Credentials is what login needs to verify a password.
type Credentials struct {
	UserID       int64
	PasswordHash string
}

// NewAccount is a validated registration ready to persist.
type NewAccount struct {
	Name         string
	Email        string
	PasswordHash string
	Mobile       string
	Age          *int
	Profession   string
}

// Account is the result of a successful registration.
type Account struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Mobile     string    `json:"mobile,omitempty"`
	Age        *int      `json:"age,omitempty"`
	Profession string    `json:"profession,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Claims represents JWT token claims. The subject carries the user id.
type Claims struct {
	UserID int64  `json:"uid"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies access and refresh tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
	AccessTTL() time.Duration
}

// Repository stores accounts. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	CreateAccount(ctx context.Context, account *NewAccount) (*Account, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}
