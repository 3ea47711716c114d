package parking

import (
	"context"
	"log/slog"
	"time"

	"github.com/protomem/parking-tracker/internal/model"
)

// Ledger owns the entrance/departure state machine. A vehicle is either
// inside (one open session) or outside (none); the store enforces the
// one-open-session invariant, the ledger only orchestrates.
type Ledger struct {
	Logger   *slog.Logger
	Vehicles VehicleStore
	Sessions SessionStore

	now func() time.Time
}

func NewLedger(logger *slog.Logger, vehicles VehicleStore, sessions SessionStore) *Ledger {
	return &Ledger{
		Logger:   logger.With("service", "ledger"),
		Vehicles: vehicles,
		Sessions: sessions,
		now:      time.Now,
	}
}

// OpenSession records the entrance of a registered vehicle. The vehicle
// must exist and must not already be inside.
func (led *Ledger) OpenSession(ctx context.Context, vehicleID string) (model.Session, error) {
	if _, err := led.Vehicles.Get(ctx, vehicleID); err != nil {
		return model.Session{}, err
	}

	session, err := led.Sessions.InsertOpen(ctx, vehicleID, led.now())
	if err != nil {
		return model.Session{}, err
	}

	led.Logger.Debug("session opened", "sessionId", session.ID, "vehicleId", vehicleID)

	return session, nil
}

// CloseSession records the departure of a vehicle with an open session,
// fixing its stay in whole minutes.
func (led *Ledger) CloseSession(ctx context.Context, vehicleID string) (model.Session, error) {
	session, err := led.Sessions.CloseOpen(ctx, vehicleID, led.now())
	if err != nil {
		return model.Session{}, err
	}

	led.Logger.Debug("session closed",
		"sessionId", session.ID, "vehicleId", vehicleID, "minutes", session.Minutes)

	return session, nil
}

func (led *Ledger) SessionsFor(ctx context.Context, vehicleID string) ([]model.Session, error) {
	return led.Sessions.AllByVehicle(ctx, vehicleID)
}

func (led *Ledger) SessionsByClass(ctx context.Context, class model.Class) ([]model.Session, error) {
	return led.Sessions.AllByClass(ctx, class)
}

// AllSessions returns every session ever recorded. As with the registry,
// an empty ledger is an error.
func (led *Ledger) AllSessions(ctx context.Context) ([]model.Session, error) {
	sessions, err := led.Sessions.All(ctx)
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		return nil, model.NewError("sessions", model.ErrEmpty)
	}

	return sessions, nil
}
