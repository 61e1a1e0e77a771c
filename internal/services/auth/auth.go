package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	Insert(ctx context.Context, email string, passwordHash []byte) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

type Config struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	HashCost           int
}

type AuthService struct {
	log     *slog.Logger
	storage UsersStorage
	cfg     Config
}

func New(log *slog.Logger, storage UsersStorage, cfg Config) *AuthService {
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		log:     log,
		storage: storage,
		cfg:     cfg,
	}
}

// Register creates an account from a Basic credential header. The password is
// stored only as a bcrypt hash and never leaves this package in plaintext.
func (s *AuthService) Register(ctx context.Context, basicHeader string) (*models.User, error) {
	const op = "auth.AuthService.Register"
	email, password, err := ParseBasicCredentials(basicHeader)
	if err != nil {
		return nil, err
	}
	log := s.log.With("op", op, "email", email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.HashCost)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	user, err := s.storage.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already registered")
			return nil, ErrDuplicateCredential
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// Authenticate resolves an email/password pair to a stored user. An unknown
// email and a wrong password fail identically.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	log := s.log.With("op", op, "email", email)
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return nil, ErrInvalidCredential
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// Login turns a Basic credential header into a signed access/refresh pair.
func (s *AuthService) Login(ctx context.Context, basicHeader string) (*TokensDTO, error) {
	email, password, err := ParseBasicCredentials(basicHeader)
	if err != nil {
		return nil, err
	}
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.IssueTokenPair(user.ID, user.Role)
}

// Refresh exchanges a valid refresh token for a fresh pair. The subject is
// re-checked against the store so tokens for deleted accounts stop working.
func (s *AuthService) Refresh(ctx context.Context, bearerHeader string) (*TokensDTO, error) {
	const op = "auth.AuthService.Refresh"
	claims, err := s.VerifyBearerToken(bearerHeader, TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.storage.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.With("op", op, "user_id", claims.UserID).Info("refresh for missing user")
			return nil, ErrInvalidCredential
		}
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return s.IssueTokenPair(user.ID, user.Role)
}

func base64Decode(s string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
