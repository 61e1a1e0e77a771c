package directors

import (
	"context"
	"errors"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"log/slog"
	"time"
)

var (
	ErrDirectorNotFound = errors.New("director not found")
	ErrDirectorInUse    = errors.New("director is still referenced by movies")
)

type DirectorsStorage interface {
	Insert(ctx context.Context, name string, dateOfBirth time.Time, nationality string) (*models.Director, error)
	Get(ctx context.Context, id int64) (*models.Director, error)
	List(ctx context.Context) ([]models.Director, error)
	Update(ctx context.Context, director *models.Director) (*models.Director, error)
	Delete(ctx context.Context, id int64) error
}

type UpdateDirectorInput struct {
	Name        *string
	DateOfBirth *time.Time
	Nationality *string
}

type DirectorService struct {
	log     *slog.Logger
	storage DirectorsStorage
}

func New(log *slog.Logger, storage DirectorsStorage) *DirectorService {
	return &DirectorService{
		log:     log,
		storage: storage,
	}
}

func (s *DirectorService) Create(ctx context.Context, name string, dateOfBirth time.Time, nationality string) (*models.Director, error) {
	const op = "directors.DirectorService.Create"
	director, err := s.storage.Insert(ctx, name, dateOfBirth, nationality)
	if err != nil {
		s.log.With("op", op, "name", name).Error(err.Error())
		return nil, err
	}
	return director, nil
}

func (s *DirectorService) Get(ctx context.Context, id int64) (*models.Director, error) {
	const op = "directors.DirectorService.Get"
	log := s.log.With("op", op, "id", id)
	director, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("director not found")
			return nil, ErrDirectorNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return director, nil
}

func (s *DirectorService) List(ctx context.Context) ([]models.Director, error) {
	const op = "directors.DirectorService.List"
	directors, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return directors, nil
}

func (s *DirectorService) Update(ctx context.Context, id int64, input UpdateDirectorInput) (*models.Director, error) {
	const op = "directors.DirectorService.Update"
	log := s.log.With("op", op, "id", id)
	director, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		director.Name = *input.Name
	}
	if input.DateOfBirth != nil {
		director.DateOfBirth = *input.DateOfBirth
	}
	if input.Nationality != nil {
		director.Nationality = *input.Nationality
	}
	updated, err := s.storage.Update(ctx, director)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("director not found")
			return nil, ErrDirectorNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *DirectorService) Delete(ctx context.Context, id int64) error {
	const op = "directors.DirectorService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("director not found")
			return ErrDirectorNotFound
		case errors.Is(err, storage.ErrConflict):
			log.Info("director still referenced")
			return ErrDirectorInUse
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
