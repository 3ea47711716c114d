package main

import (
	"errors"
	"net/http"

	"github.com/protomem/parking-tracker/internal/ctxstore"
	"github.com/protomem/parking-tracker/internal/model"
	"github.com/protomem/parking-tracker/internal/response"
	"github.com/protomem/parking-tracker/internal/validator"
)

func (app *application) reportServerError(r *http.Request, err error) {
	var (
		message = err.Error()
		method  = r.Method
		url     = r.URL.String()
	)

	requestAttrs := []any{"method", method, "url", url}
	if tid, ok := ctxstore.From[string](r.Context(), _traceIDKey); ok {
		requestAttrs = append(requestAttrs, _traceIDKey.String(), tid)
	}

	app.logger.Error(message, requestAttrs...)
}

func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	err := response.JSONWithHeaders(w, status, response.JSONObject{"message": message}, headers)
	if err != nil {
		app.reportServerError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.reportServerError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorMessage(w, r, http.StatusInternalServerError, message, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	app.errorMessage(w, r, http.StatusNotFound, message, nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := "The " + r.Method + " method is not supported for this resource"
	app.errorMessage(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, v validator.Validator) {
	err := response.JSON(w, http.StatusUnprocessableEntity, v)
	if err != nil {
		app.serverError(w, r, err)
	}
}

// coreError maps the core's sentinel errors onto transport statuses:
// absent or empty is 404, a duplicate or an already-open session is 409,
// everything else is a server fault.
func (app *application) coreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrEmpty):
		app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, model.ErrExists):
		app.errorMessage(w, r, http.StatusConflict, err.Error(), nil)
	default:
		app.serverError(w, r, err)
	}
}
