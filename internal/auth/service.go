package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps login timing similar for unknown emails.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("skill-exchange-dummy-password"), bcrypt.MinCost)

type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
	queryTimeout   time.Duration
}

func NewService(repo Repository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// WithQueryTimeout bounds every repository call.
func (s *Service) WithQueryTimeout(d time.Duration) *Service {
	s.queryTimeout = d
	return s
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*Account, AuthTokens, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, AuthTokens{}, err
	}

	hash, err := s.HashPassword(dto.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, AuthTokens{}, internal.NewValidationFieldError("password", "password is too long", internal.ErrCodePasswordTooLong)
	}
	if err != nil {
		return nil, AuthTokens{}, internal.NewInternalError("failed to hash password", err)
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	account, err := s.repo.CreateAccount(ctx, &NewAccount{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Mobile:       dto.Mobile,
		Age:          dto.Age,
		Profession:   dto.Profession,
	})
	if err != nil {
		if errors.Is(err, internal.ErrEmailTaken) {
			return nil, AuthTokens{}, internal.ErrEmailTaken
		}
		s.logger.Error("failed to create account", "error", err)
		return nil, AuthTokens{}, internal.NewInternalError("failed to create account", err)
	}

	tokens, err := s.issueTokens(account.ID)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	s.logger.Info("account registered", "user_id", account.ID)
	return account, tokens, nil
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	creds, err := s.repo.GetCredentialsByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		s.logger.Error("failed to load credentials", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to authenticate", err)
	}
	if creds == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(dto.Password))
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(creds.UserID)
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	if _, err := s.ensureUser(ctx, claims.UserID); err != nil {
		return AuthTokens{}, err
	}

	return s.issueTokens(claims.UserID)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// Authorize resolves a bearer token to a user id that still exists.
func (s *Service) Authorize(ctx context.Context, tokenString string) (int64, error) {
	claims, err := s.tokenGenerator.ValidateAccessToken(tokenString)
	if err != nil {
		return 0, err
	}
	return s.ensureUser(ctx, claims.UserID)
}

func (s *Service) ensureUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return 0, internal.NewInternalError("failed to verify user", err)
	}
	if !exists {
		return 0, internal.ErrInvalidToken
	}
	return userID, nil
}

func (s *Service) issueTokens(userID int64) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokenGenerator.AccessTTL().Seconds()),
	}, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
