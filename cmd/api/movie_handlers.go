package main

import (
	"errors"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/lib/validator"
	"kinoteka/proj/internal/services/movies"
	"net/http"
)

type createMovieRequest struct {
	Name       string   `json:"name" validate:"required" errorMsg:"Movie name must not be empty"`
	Characters []string `json:"characters" validate:"required,min=1,dive,required"`
	DirectorID int64    `json:"director_id" validate:"required,gt=0"`
	Genres     []string `json:"genres" validate:"required,min=1,dive,required"`
	Detail     *string  `json:"detail" validate:"omitempty,min=1"`
}

type updateMovieRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1" errorMsg:"Movie name must not be empty"`
	Characters []string `json:"characters" validate:"omitnil,min=1,dive,required"`
	DirectorID *int64   `json:"director_id" validate:"omitempty,gt=0"`
	Genres     []string `json:"genres" validate:"omitnil,min=1,dive,required"`
	Detail     *string  `json:"detail" validate:"omitempty,min=1" errorMsg:"Detail must not be empty"`
}

type listMoviesQuery struct {
	Name string `schema:"name"`
}

func movieProjections(items []models.Movie) []*models.MovieProjection {
	projections := make([]*models.MovieProjection, 0, len(items))
	for i := range items {
		projections = append(projections, items[i].Projection())
	}
	return projections
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var req createMovieRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	movie, err := app.services.Movies.Create(r.Context(), movies.CreateMovieInput{
		Name:       req.Name,
		Characters: req.Characters,
		DirectorID: req.DirectorID,
		Genres:     req.Genres,
		Detail:     req.Detail,
	})
	if err != nil {
		app.movieServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie.Projection()}, "Movie created")
}

func (app *Application) getMovies(w http.ResponseWriter, r *http.Request) {
	var query listMoviesQuery
	if !app.decodeQuery(w, r, &query) {
		return
	}
	if query.Name != "" && len([]rune(query.Name)) < 3 {
		app.Http.BadRequest(w, r, "Movie name filter must be at least 3 characters long")
		return
	}
	items, err := app.services.Movies.List(r.Context(), query.Name)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieProjections(items)}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		app.movieServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie.Projection()}, "")
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var req updateMovieRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	movie, err := app.services.Movies.Update(r.Context(), id, movies.UpdateMovieInput{
		Name:       req.Name,
		Characters: req.Characters,
		DirectorID: req.DirectorID,
		Genres:     req.Genres,
		Detail:     req.Detail,
	})
	if err != nil {
		app.movieServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie.Projection()}, "Movie updated")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		app.movieServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Movie deleted")
}

func (app *Application) movieServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, movies.ErrMovieNotFound), errors.Is(err, movies.ErrDirectorNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, movies.ErrMovieAlreadyExists), errors.Is(err, movies.ErrDetailAlreadyInUse):
		app.Http.Conflict(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
