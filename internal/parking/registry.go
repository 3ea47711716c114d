package parking

import (
	"context"
	"log/slog"

	"github.com/protomem/parking-tracker/internal/model"
)

// Registry owns vehicle identity and classification.
type Registry struct {
	Logger   *slog.Logger
	Vehicles VehicleStore
}

func NewRegistry(logger *slog.Logger, vehicles VehicleStore) *Registry {
	return &Registry{
		Logger:   logger.With("service", "registry"),
		Vehicles: vehicles,
	}
}

func (reg *Registry) Register(ctx context.Context, id string, class model.Class) (model.Vehicle, error) {
	vehicle, err := reg.Vehicles.Insert(ctx, id, class)
	if err != nil {
		return model.Vehicle{}, err
	}

	reg.Logger.Debug("vehicle registered", "vehicleId", vehicle.ID, "class", vehicle.Class)

	return vehicle, nil
}

func (reg *Registry) Lookup(ctx context.Context, id string) (model.Vehicle, error) {
	return reg.Vehicles.Get(ctx, id)
}

func (reg *Registry) UpdateClass(ctx context.Context, id string, class model.Class) (model.Vehicle, error) {
	vehicle, err := reg.Vehicles.UpdateClass(ctx, id, class)
	if err != nil {
		return model.Vehicle{}, err
	}

	reg.Logger.Debug("vehicle class updated", "vehicleId", vehicle.ID, "class", vehicle.Class)

	return vehicle, nil
}

// ListAll returns every registered vehicle. An empty registry is an error,
// not an empty result.
func (reg *Registry) ListAll(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := reg.Vehicles.All(ctx)
	if err != nil {
		return nil, err
	}

	if len(vehicles) == 0 {
		return nil, model.NewError("vehicles", model.ErrEmpty)
	}

	return vehicles, nil
}
