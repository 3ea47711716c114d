package parking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/protomem/parking-tracker/internal/model"
)

// memDB is an in-process stand-in for Postgres. It enforces the same
// guarantees the schema does: unique vehicle ids and at most one open
// session per vehicle, checked under a single lock. The two store views
// share it the way the DAOs share a connection pool.
type memDB struct {
	mu       sync.Mutex
	vehicles map[string]model.Vehicle
	sessions []model.Session
	nextID   model.ID
}

type (
	memVehicleStore struct{ *memDB }
	memSessionStore struct{ *memDB }
)

func newMemDB() *memDB {
	return &memDB{
		vehicles: make(map[string]model.Vehicle),
		nextID:   1,
	}
}

func (db *memDB) stores() (VehicleStore, SessionStore) {
	return memVehicleStore{db}, memSessionStore{db}
}

func (db *memDB) openSessionCount(vehicleID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()

	count := 0
	for _, session := range db.sessions {
		if session.Vehicle == vehicleID && session.Open() {
			count++
		}
	}

	return count
}

func (st memVehicleStore) Get(_ context.Context, id string) (model.Vehicle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	vehicle, ok := st.vehicles[id]
	if !ok {
		return model.Vehicle{}, model.NewError("vehicle", model.ErrNotFound)
	}

	return vehicle, nil
}

func (st memVehicleStore) All(_ context.Context) ([]model.Vehicle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	vehicles := make([]model.Vehicle, 0, len(st.vehicles))
	for _, vehicle := range st.vehicles {
		vehicles = append(vehicles, vehicle)
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })

	return vehicles, nil
}

func (st memVehicleStore) Insert(_ context.Context, id string, class model.Class) (model.Vehicle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.vehicles[id]; ok {
		return model.Vehicle{}, model.NewError("vehicle", model.ErrExists)
	}

	now := time.Now()
	vehicle := model.Vehicle{ID: id, CreatedAt: now, UpdatedAt: now, Class: class}
	st.vehicles[id] = vehicle

	return vehicle, nil
}

func (st memVehicleStore) UpdateClass(_ context.Context, id string, class model.Class) (model.Vehicle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	vehicle, ok := st.vehicles[id]
	if !ok {
		return model.Vehicle{}, model.NewError("vehicle", model.ErrNotFound)
	}

	vehicle.Class = class
	vehicle.UpdatedAt = time.Now()
	st.vehicles[id] = vehicle

	return vehicle, nil
}

func (st memSessionStore) InsertOpen(_ context.Context, vehicleID string, entry time.Time) (model.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.vehicles[vehicleID]; !ok {
		return model.Session{}, model.NewError("vehicle", model.ErrNotFound)
	}

	for _, session := range st.sessions {
		if session.Vehicle == vehicleID && session.Open() {
			return model.Session{}, model.NewError("open session", model.ErrExists)
		}
	}

	now := time.Now()
	session := model.Session{
		ID:        st.nextID,
		CreatedAt: now,
		UpdatedAt: now,
		Vehicle:   vehicleID,
		Entry:     entry,
	}
	st.nextID++
	st.sessions = append(st.sessions, session)

	return session, nil
}

func (st memSessionStore) CloseOpen(_ context.Context, vehicleID string, exit time.Time) (model.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i := range st.sessions {
		session := &st.sessions[i]
		if session.Vehicle != vehicleID || !session.Open() {
			continue
		}

		exitCopy := exit
		session.Exit = &exitCopy
		session.Minutes = model.StayMinutes(session.Entry, exit)
		session.UpdatedAt = time.Now()

		return *session, nil
	}

	return model.Session{}, model.NewError("open session", model.ErrNotFound)
}

func (st memSessionStore) All(_ context.Context) ([]model.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return append([]model.Session(nil), st.sessions...), nil
}

func (st memSessionStore) AllByVehicle(_ context.Context, vehicleID string) ([]model.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessions := make([]model.Session, 0)
	for _, session := range st.sessions {
		if session.Vehicle == vehicleID {
			sessions = append(sessions, session)
		}
	}

	return sessions, nil
}

func (st memSessionStore) AllByClass(_ context.Context, class model.Class) ([]model.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessions := make([]model.Session, 0)
	for _, session := range st.sessions {
		if st.vehicles[session.Vehicle].Class == class {
			sessions = append(sessions, session)
		}
	}

	return sessions, nil
}

func (st memSessionStore) MonthlyRollover(_ context.Context) (int64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var deleted int64
	kept := st.sessions[:0]
	for _, session := range st.sessions {
		switch st.vehicles[session.Vehicle].Class {
		case model.ClassOfficial:
			deleted++
		case model.ClassResident:
			session.Minutes = 0
			kept = append(kept, session)
		default:
			kept = append(kept, session)
		}
	}
	st.sessions = kept

	return deleted, nil
}
