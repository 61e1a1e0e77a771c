package movies

import (
	"context"
	"errors"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"log/slog"
)

type CatalogStorage interface {
	storage.CatalogQueries
	Begin(ctx context.Context) (storage.CatalogTx, error)
}

type CreateMovieInput struct {
	Name       string
	Characters []string
	DirectorID int64
	Genres     []string
	Detail     *string
}

// UpdateMovieInput carries a partial change set; nil fields are left as-is.
type UpdateMovieInput struct {
	Name       *string
	Characters []string
	Detail     *string
	DirectorID *int64
	Genres     []string
}

// MovieService keeps movies consistent with their director, genres and
// detail. Every mutation runs inside a single storage transaction, so a
// failed step (a missing director, a name clash) leaves no orphan rows.
type MovieService struct {
	log     *slog.Logger
	storage CatalogStorage
}

func New(log *slog.Logger, storage CatalogStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

// List returns all non-deleted movies, optionally narrowed to names
// containing the given substring, each with director, genres and detail.
func (s *MovieService) List(ctx context.Context, nameSubstring string) ([]models.Movie, error) {
	const op = "movies.MovieService.List"
	movies, err := s.storage.ListMovies(ctx, nameSubstring)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) Create(ctx context.Context, input CreateMovieInput) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "name", input.Name, "director_id", input.DirectorID)
	tx, err := s.storage.Begin(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	defer tx.Rollback(ctx)

	exists, err := tx.DirectorExists(ctx, input.DirectorID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if !exists {
		log.Info("director not found")
		return nil, ErrDirectorNotFound
	}

	var detailID *int64
	if input.Detail != nil {
		detail, err := tx.InsertDetail(ctx, *input.Detail)
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return nil, ErrDetailAlreadyInUse
			}
			log.Error(err.Error())
			return nil, err
		}
		detailID = &detail.ID
	}

	movie, err := tx.InsertMovie(ctx, input.Name, input.Characters, input.DirectorID, detailID)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, tx, input.Genres)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if err := tx.ReplaceMovieGenres(ctx, movie.ID, genreIDs); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	created, err := tx.GetMovie(ctx, movie.ID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return created, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, input UpdateMovieInput) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id)
	tx, err := s.storage.Begin(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	defer tx.Rollback(ctx)

	movie, err := tx.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}

	if input.Name != nil {
		movie.Name = *input.Name
	}
	if input.Characters != nil {
		movie.Characters = input.Characters
	}
	if input.DirectorID != nil {
		exists, err := tx.DirectorExists(ctx, *input.DirectorID)
		if err != nil {
			log.Error(err.Error())
			return nil, err
		}
		if !exists {
			log.Info("director not found", "director_id", *input.DirectorID)
			return nil, ErrDirectorNotFound
		}
		movie.DirectorID = *input.DirectorID
	}
	if input.Detail != nil {
		if movie.DetailID != nil {
			// Mutate the linked detail row in place, keeping its id.
			if err := tx.UpdateDetail(ctx, *movie.DetailID, *input.Detail); err != nil {
				if errors.Is(err, storage.ErrConflict) {
					return nil, ErrDetailAlreadyInUse
				}
				log.Error(err.Error())
				return nil, err
			}
		} else {
			detail, err := tx.InsertDetail(ctx, *input.Detail)
			if err != nil {
				if errors.Is(err, storage.ErrConflict) {
					return nil, ErrDetailAlreadyInUse
				}
				log.Error(err.Error())
				return nil, err
			}
			movie.DetailID = &detail.ID
		}
	}

	if err := tx.UpdateMovie(ctx, movie); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}

	if input.Genres != nil {
		genreIDs, err := s.resolveGenres(ctx, tx, input.Genres)
		if err != nil {
			log.Error(err.Error())
			return nil, err
		}
		if err := tx.ReplaceMovieGenres(ctx, movie.ID, genreIDs); err != nil {
			log.Error(err.Error())
			return nil, err
		}
	}

	updated, err := tx.GetMovie(ctx, movie.ID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

// Delete removes the movie and, explicitly, the detail row it owns. The
// director and any genres stay: other movies may reference them.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	tx, err := s.storage.Begin(ctx)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	defer tx.Rollback(ctx)

	movie, err := tx.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	if err := tx.ReplaceMovieGenres(ctx, id, nil); err != nil {
		log.Error(err.Error())
		return err
	}
	if err := tx.DeleteMovie(ctx, id); err != nil {
		log.Error(err.Error())
		return err
	}
	if movie.DetailID != nil {
		if err := tx.DeleteDetail(ctx, *movie.DetailID); err != nil {
			log.Error(err.Error())
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

// resolveGenres maps genre names to rows, creating missing ones. Duplicate
// names in the input collapse to a single row.
func (s *MovieService) resolveGenres(ctx context.Context, tx storage.CatalogTx, names []string) ([]int64, error) {
	seen := make(map[string]bool, len(names))
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		genre, err := tx.FindOrCreateGenre(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}
