package main

import (
	"kinoteka/proj/internal/config"
	"kinoteka/proj/internal/services"
	"kinoteka/proj/internal/storage/postgres"
	"log/slog"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.PostgresDB) *Application {
	return &Application{
		cfg:       cfg,
		log:       log,
		services:  services.New(log, cfg, storage),
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
