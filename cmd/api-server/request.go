package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func vehicleIDFromRequest(r *http.Request) string {
	return chi.URLParam(r, "vehicleId")
}
