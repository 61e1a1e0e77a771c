package main

import (
	"errors"
	"kinoteka/proj/internal/lib/validator"
	"kinoteka/proj/internal/services/directors"
	"net/http"
	"time"
)

type createDirectorRequest struct {
	Name        string    `json:"name" validate:"required"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	Nationality string    `json:"nationality" validate:"required"`
}

type updateDirectorRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Nationality *string    `json:"nationality" validate:"omitempty,min=1"`
}

func (app *Application) createDirector(w http.ResponseWriter, r *http.Request) {
	var req createDirectorRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	director, err := app.services.Directors.Create(r.Context(), req.Name, req.DateOfBirth, req.Nationality)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"director": director}, "Director created")
}

func (app *Application) getDirectors(w http.ResponseWriter, r *http.Request) {
	items, err := app.services.Directors.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"directors": items}, "")
}

func (app *Application) getDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	director, err := app.services.Directors.Get(r.Context(), id)
	if err != nil {
		app.directorServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"director": director}, "")
}

func (app *Application) updateDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var req updateDirectorRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, req); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	director, err := app.services.Directors.Update(r.Context(), id, directors.UpdateDirectorInput{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Nationality: req.Nationality,
	})
	if err != nil {
		app.directorServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"director": director}, "Director updated")
}

func (app *Application) deleteDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Directors.Delete(r.Context(), id); err != nil {
		app.directorServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Director deleted")
}

func (app *Application) directorServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, directors.ErrDirectorNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, directors.ErrDirectorInUse):
		app.Http.Conflict(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
