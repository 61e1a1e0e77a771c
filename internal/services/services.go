package services

import (
	"kinoteka/proj/internal/config"
	"kinoteka/proj/internal/services/auth"
	"kinoteka/proj/internal/services/directors"
	"kinoteka/proj/internal/services/genres"
	"kinoteka/proj/internal/services/movies"
	"kinoteka/proj/internal/services/users"
	"kinoteka/proj/internal/storage/postgres"
	"kinoteka/proj/internal/storage/postgres/models"
	"log/slog"
)

type Services struct {
	Auth      *auth.AuthService
	Movies    *movies.MovieService
	Directors *directors.DirectorService
	Genres    *genres.GenreService
	Users     *users.UserService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.PostgresDB) *Services {
	m := models.New(storage)
	return &Services{
		Auth: auth.New(log, m.Users, auth.Config{
			AccessTokenSecret:  cfg.Auth.AccessTokenSecret,
			RefreshTokenSecret: cfg.Auth.RefreshTokenSecret,
			AccessTokenTTL:     cfg.Auth.AccessTokenTTL,
			RefreshTokenTTL:    cfg.Auth.RefreshTokenTTL,
			HashCost:           cfg.Auth.HashRounds,
		}),
		Movies:    movies.New(log, m.Catalog),
		Directors: directors.New(log, m.Directors),
		Genres:    genres.New(log, m.Genres),
		Users:     users.New(log, m.Users),
	}
}
