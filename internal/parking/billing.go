package parking

import (
	"context"
	"math"

	"github.com/protomem/parking-tracker/internal/model"
)

// RateTable is the per-class price per parked minute. It is plain
// configuration: build one, hand it to Billing, never mutate it.
type RateTable struct {
	Resident float64
	Official float64
	Standard float64
}

func DefaultRates() RateTable {
	return RateTable{
		Resident: 0.05,
		Official: 0,
		Standard: 0.5,
	}
}

func (rt RateTable) For(class model.Class) float64 {
	switch class {
	case model.ClassResident:
		return rt.Resident
	case model.ClassOfficial:
		return rt.Official
	default:
		return rt.Standard
	}
}

// Billing computes the amount a vehicle owes for its accumulated parked
// minutes. It only reads ledger state.
type Billing struct {
	Rates    RateTable
	Vehicles VehicleStore
	Sessions SessionStore
}

func NewBilling(rates RateTable, vehicles VehicleStore, sessions SessionStore) *Billing {
	return &Billing{
		Rates:    rates,
		Vehicles: vehicles,
		Sessions: sessions,
	}
}

// Fee sums the minutes of every session of the vehicle, open or closed,
// and prices them by class. A vehicle that never parked has no fee, only
// an error.
func (bil *Billing) Fee(ctx context.Context, vehicleID string) (float64, error) {
	vehicle, err := bil.Vehicles.Get(ctx, vehicleID)
	if err != nil {
		return 0, err
	}

	sessions, err := bil.Sessions.AllByVehicle(ctx, vehicleID)
	if err != nil {
		return 0, err
	}

	if len(sessions) == 0 {
		return 0, model.NewError("sessions", model.ErrEmpty)
	}

	totalMinutes := 0
	for _, session := range sessions {
		totalMinutes += session.Minutes
	}

	return roundHalfUp(float64(totalMinutes) * bil.Rates.For(vehicle.Class)), nil
}

// roundHalfUp rounds to 2 decimal places, ties away from zero upward.
// Distinct from the minute truncation rule: time is cut, money is rounded.
func roundHalfUp(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
