package genres

import (
	"context"
	"errors"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"log/slog"
)

var (
	ErrGenreNotFound      = errors.New("genre not found")
	ErrGenreAlreadyExists = errors.New("genre with that name already exists")
)

type GenresStorage interface {
	Insert(ctx context.Context, name string) (*models.Genre, error)
	Get(ctx context.Context, id int64) (*models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	Update(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type GenreService struct {
	log     *slog.Logger
	storage GenresStorage
}

func New(log *slog.Logger, storage GenresStorage) *GenreService {
	return &GenreService{
		log:     log,
		storage: storage,
	}
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Create"
	log := s.log.With("op", op, "name", name)
	genre, err := s.storage.Insert(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("genre already exists")
			return nil, ErrGenreAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Get(ctx context.Context, id int64) (*models.Genre, error) {
	const op = "genres.GenreService.Get"
	log := s.log.With("op", op, "id", id)
	genre, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	const op = "genres.GenreService.List"
	genres, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *GenreService) Rename(ctx context.Context, id int64, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Rename"
	log := s.log.With("op", op, "id", id, "name", name)
	genre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	genre.Name = name
	updated, err := s.storage.Update(ctx, genre)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("genre already exists")
			return nil, ErrGenreAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *GenreService) Delete(ctx context.Context, id int64) error {
	const op = "genres.GenreService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return ErrGenreNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
