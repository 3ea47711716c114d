package main

import (
	"errors"
	"net/http"

	"github.com/protomem/parking-tracker/internal/model"
	"github.com/protomem/parking-tracker/internal/request"
	"github.com/protomem/parking-tracker/internal/response"
	"github.com/protomem/parking-tracker/internal/validator"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestEntrance struct {
	VehicleID    string  `json:"vehicleId"`
	VehicleClass *string `json:"vehicleClass,omitempty"`
}

// handleEntrance opens a parking session for a vehicle. When the body
// carries a vehicleClass and the vehicle is unknown, it is registered on
// the fly; without a class an unknown vehicle is rejected.
func (app *application) handleEntrance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestEntrance
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateVehicleID(&v, input.VehicleID)

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	if input.VehicleClass != nil {
		_, err := app.registry.Lookup(ctx, input.VehicleID)
		switch {
		case err == nil:
			break
		case errors.Is(err, model.ErrNotFound):
			if _, err := app.registry.Register(ctx, input.VehicleID, model.ParseClass(*input.VehicleClass)); err != nil {
				app.coreError(w, r, err)
				return
			}
		default:
			app.serverError(w, r, err)
			return
		}
	}

	session, err := app.ledger.OpenSession(ctx, input.VehicleID)
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"message": "Register created successfully",
		"session": session,
	}
	if err := response.JSON(w, http.StatusCreated, respBody); err != nil {
		app.serverError(w, r, err)
	}
}

type requestDeparture struct {
	VehicleID string `json:"vehicleId"`
}

// handleDeparture closes the open session of a vehicle.
func (app *application) handleDeparture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestDeparture
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateVehicleID(&v, input.VehicleID)

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	session, err := app.ledger.CloseSession(ctx, input.VehicleID)
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"message": "Register updated successfully",
		"session": session,
	}
	if err := response.JSON(w, http.StatusOK, respBody); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleAllSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := app.ledger.AllSessions(r.Context())
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"sessions": sessions}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := app.registry.ListAll(r.Context())
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"vehicles": vehicles}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestRegisterVehicle struct {
	ID    string `json:"id"`
	Class string `json:"class"`
}

func (app *application) handleRegisterVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestRegisterVehicle
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateVehicleID(&v, input.ID)

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	vehicle, err := app.registry.Register(ctx, input.ID, model.ParseClass(input.Class))
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"message": "Vehicle created successfully",
		"vehicle": vehicle,
	}
	if err := response.JSON(w, http.StatusCreated, respBody); err != nil {
		app.serverError(w, r, err)
	}
}

type requestUpdateVehicle struct {
	Class string `json:"class"`
}

func (app *application) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vehicleID := vehicleIDFromRequest(r)

	var input requestUpdateVehicle
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	vehicle, err := app.registry.UpdateClass(ctx, vehicleID, model.ParseClass(input.Class))
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"message": "Vehicle updated successfully",
		"vehicle": vehicle,
	}
	if err := response.JSON(w, http.StatusOK, respBody); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vehicleID := vehicleIDFromRequest(r)

	fee, err := app.billing.Fee(ctx, vehicleID)
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"vehicleId": vehicleID,
		"fee":       fee,
	}
	if err := response.JSON(w, http.StatusOK, respBody); err != nil {
		app.serverError(w, r, err)
	}
}

// handleRollover runs the monthly batch. The caller owns the schedule.
func (app *application) handleRollover(w http.ResponseWriter, r *http.Request) {
	summary, err := app.rollover.Run(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"message":      "Deleted all official registers",
		"deletedCount": summary.Deleted,
	}
	if err := response.JSON(w, http.StatusOK, respBody); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	path, err := app.reporter.Monthly(r.Context())
	if err != nil {
		app.coreError(w, r, err)
		return
	}

	respBody := response.JSONObject{
		"message":    "Report created successfully",
		"reportFile": path,
	}
	if err := response.JSON(w, http.StatusOK, respBody); err != nil {
		app.serverError(w, r, err)
	}
}
