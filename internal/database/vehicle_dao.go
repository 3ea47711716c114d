package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/parking-tracker/internal/model"
)

type VehicleDAO struct {
	Logger *slog.Logger
	*DB
}

func NewVehicleDAO(logger *slog.Logger, db *DB) *VehicleDAO {
	return &VehicleDAO{
		Logger: logger.With("dao", "vehicle"),
		DB:     db,
	}
}

func (dao *VehicleDAO) Get(ctx context.Context, id string) (model.Vehicle, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select("*").
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var vehicle model.Vehicle
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&vehicle); err != nil {
		if IsNoRows(err) {
			return model.Vehicle{}, model.NewError("vehicle", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Vehicle{}, err
	}

	return vehicle, nil
}

func (dao *VehicleDAO) All(ctx context.Context) ([]model.Vehicle, error) {
	logger := dao.Logger.With("query", "all")

	query, args, err := dao.Builder.
		Select("*").
		From("vehicles").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return []model.Vehicle{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	vehicles := make([]model.Vehicle, 0)
	if err := dao.SelectContext(ctx, &vehicles, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)

		return []model.Vehicle{}, err
	}

	logger.Debug("success query execute", "countVehicles", len(vehicles))

	return vehicles, nil
}

func (dao *VehicleDAO) Insert(ctx context.Context, id string, class model.Class) (model.Vehicle, error) {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("vehicles").
		Columns("id", "class").
		Values(id, class).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var vehicle model.Vehicle
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&vehicle); err != nil {
		if IsUniqueViolation(err) {
			return model.Vehicle{}, model.NewError("vehicle", model.ErrExists)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Vehicle{}, err
	}

	logger.Debug("success query execute", "insertId", vehicle.ID)

	return vehicle, nil
}

func (dao *VehicleDAO) UpdateClass(ctx context.Context, id string, class model.Class) (model.Vehicle, error) {
	logger := dao.Logger.With("query", "updateClass")

	query, args, err := dao.Builder.
		Update("vehicles").
		SetMap(map[string]any{
			"class":      class,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var vehicle model.Vehicle
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&vehicle); err != nil {
		if IsNoRows(err) {
			return model.Vehicle{}, model.NewError("vehicle", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Vehicle{}, err
	}

	logger.Debug("success query execute", "updateId", vehicle.ID)

	return vehicle, nil
}
