package main

import (
	"github.com/protomem/parking-tracker/internal/validator"
)

// Validation rules

func validateVehicleID(v *validator.Validator, vehicleID string) {
	v.CheckField(validator.NotBlank(vehicleID), "vehicleId", "cannot be blank")
	v.CheckField(validator.MaxRunes(vehicleID, 32), "vehicleId", "must not be longer than 32 characters")
}
