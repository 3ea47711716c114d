// Package parking holds the core of the facility: vehicle registry,
// session ledger, billing, monthly rollover and settlement reporting.
// Services talk to the persistent store through the narrow interfaces
// below, implemented by the DAOs in internal/database.
package parking

import (
	"context"
	"time"

	"github.com/protomem/parking-tracker/internal/model"
)

type VehicleStore interface {
	Get(ctx context.Context, id string) (model.Vehicle, error)
	All(ctx context.Context) ([]model.Vehicle, error)
	Insert(ctx context.Context, id string, class model.Class) (model.Vehicle, error)
	UpdateClass(ctx context.Context, id string, class model.Class) (model.Vehicle, error)
}

type SessionStore interface {
	// InsertOpen must fail with model.ErrExists if the vehicle already has
	// an open session, atomically with the insert itself.
	InsertOpen(ctx context.Context, vehicleID string, entry time.Time) (model.Session, error)

	// CloseOpen must atomically mark the single open session of the vehicle
	// as departed, computing its stay in whole truncated minutes, and fail
	// with model.ErrNotFound if there is none.
	CloseOpen(ctx context.Context, vehicleID string, exit time.Time) (model.Session, error)

	All(ctx context.Context) ([]model.Session, error)
	AllByVehicle(ctx context.Context, vehicleID string) ([]model.Session, error)
	AllByClass(ctx context.Context, class model.Class) ([]model.Session, error)

	// MonthlyRollover deletes OFFICIAL sessions, zeroes the minutes of
	// RESIDENT sessions and leaves STANDARD sessions alone, all under one
	// transaction. It returns the number of deleted sessions.
	MonthlyRollover(ctx context.Context) (int64, error)
}
