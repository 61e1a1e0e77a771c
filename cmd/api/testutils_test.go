package main

import (
	"context"
	"io"
	"kinoteka/proj/internal/config"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/services"
	"kinoteka/proj/internal/services/auth"
	"kinoteka/proj/internal/storage"
	"log/slog"
	"testing"
	"time"

	govalidator "github.com/go-playground/validator/v10"
)

type fakeUsersStorage struct {
	byEmail map[string]*models.User
	nextID  int64
}

func newFakeUsersStorage() *fakeUsersStorage {
	return &fakeUsersStorage{byEmail: make(map[string]*models.User)}
}

func (s *fakeUsersStorage) Insert(_ context.Context, email string, passwordHash []byte) (*models.User, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, storage.ErrConflict
	}
	s.nextID++
	user := &models.User{ID: s.nextID, Email: email, PasswordHash: passwordHash, Role: models.RoleUser}
	s.byEmail[email] = user
	return user, nil
}

func (s *fakeUsersStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *fakeUsersStorage) Get(_ context.Context, id int64) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		Auth: config.Auth{
			AccessTokenSecret:  "test-access-secret",
			RefreshTokenSecret: "test-refresh-secret",
			AccessTokenTTL:     300 * time.Second,
			RefreshTokenTTL:    24 * time.Hour,
		},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := auth.New(log, newFakeUsersStorage(), auth.Config{
		AccessTokenSecret:  cfg.Auth.AccessTokenSecret,
		RefreshTokenSecret: cfg.Auth.RefreshTokenSecret,
		AccessTokenTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL:    cfg.Auth.RefreshTokenTTL,
	})
	return &Application{
		cfg:       cfg,
		log:       log,
		services:  &services.Services{Auth: authService},
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
