package main

import (
	"errors"
	"kinoteka/proj/internal/lib/validator"
	"kinoteka/proj/internal/services/genres"
	"net/http"
)

type genreRequest struct {
	Name string `json:"name" validate:"required" errorMsg:"Genre name must not be empty"`
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	genre, err := app.services.Genres.Create(r.Context(), req.Name)
	if err != nil {
		app.genreServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "Genre created")
}

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	items, err := app.services.Genres.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": items}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	genre, err := app.services.Genres.Get(r.Context(), id)
	if err != nil {
		app.genreServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) updateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var req genreRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	genre, err := app.services.Genres.Rename(r.Context(), id, req.Name)
	if err != nil {
		app.genreServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "Genre updated")
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Genres.Delete(r.Context(), id); err != nil {
		app.genreServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Genre deleted")
}

func (app *Application) genreServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, genres.ErrGenreNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, genres.ErrGenreAlreadyExists):
		app.Http.Conflict(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
