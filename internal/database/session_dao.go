package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/parking-tracker/internal/model"
)

type SessionDAO struct {
	Logger *slog.Logger
	*DB
}

func NewSessionDAO(logger *slog.Logger, db *DB) *SessionDAO {
	return &SessionDAO{
		Logger: logger.With("dao", "session"),
		DB:     db,
	}
}

// InsertOpen creates a session with no exit time. The partial unique index
// on (vehicle_id) WHERE exit_time IS NULL makes the insert itself the
// open-session existence check, so two concurrent entrances cannot both
// succeed.
func (dao *SessionDAO) InsertOpen(ctx context.Context, vehicleID string, entry time.Time) (model.Session, error) {
	logger := dao.Logger.With("query", "insertOpen")

	query, args, err := dao.Builder.
		Insert("sessions").
		Columns("vehicle_id", "entry_time").
		Values(vehicleID, entry).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return model.Session{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var session model.Session
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&session); err != nil {
		if IsUniqueViolation(err) {
			return model.Session{}, model.NewError("open session", model.ErrExists)
		}
		if IsForeignKeyViolation(err) {
			return model.Session{}, model.NewError("vehicle", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Session{}, err
	}

	logger.Debug("success query execute", "insertId", session.ID)

	return session, nil
}

// CloseOpen marks the single open session of a vehicle as departed and
// computes its stay in whole minutes, truncated. One conditional UPDATE,
// so a concurrent close of the same session cannot be lost.
func (dao *SessionDAO) CloseOpen(ctx context.Context, vehicleID string, exit time.Time) (model.Session, error) {
	logger := dao.Logger.With("query", "closeOpen")

	query, args, err := dao.Builder.
		Update("sessions").
		Set("exit_time", exit).
		Set("minutes", squirrel.Expr("trunc(extract(epoch FROM (?::timestamptz - entry_time)) / 60)::int", exit)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"exit_time": nil}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return model.Session{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var session model.Session
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&session); err != nil {
		if IsNoRows(err) {
			return model.Session{}, model.NewError("open session", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Session{}, err
	}

	logger.Debug("success query execute", "closeId", session.ID, "minutes", session.Minutes)

	return session, nil
}

func (dao *SessionDAO) All(ctx context.Context) ([]model.Session, error) {
	return dao.selectSessions(ctx, dao.Builder.
		Select("*").
		From("sessions").
		OrderBy("id ASC"))
}

func (dao *SessionDAO) AllByVehicle(ctx context.Context, vehicleID string) ([]model.Session, error) {
	return dao.selectSessions(ctx, dao.Builder.
		Select("*").
		From("sessions").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("id ASC"))
}

func (dao *SessionDAO) AllByClass(ctx context.Context, class model.Class) ([]model.Session, error) {
	return dao.selectSessions(ctx, dao.Builder.
		Select("sessions.*").
		From("sessions").
		Join("vehicles ON vehicles.id = sessions.vehicle_id").
		Where(squirrel.Eq{"vehicles.class": class}).
		OrderBy("sessions.id ASC"))
}

func (dao *SessionDAO) selectSessions(ctx context.Context, builder squirrel.SelectBuilder) ([]model.Session, error) {
	logger := dao.Logger.With("query", "select")

	query, args, err := builder.ToSql()
	if err != nil {
		return []model.Session{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	sessions := make([]model.Session, 0)
	if err := dao.SelectContext(ctx, &sessions, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)

		return []model.Session{}, err
	}

	logger.Debug("success query execute", "countSessions", len(sessions))

	return sessions, nil
}

// MonthlyRollover purges the sessions of OFFICIAL vehicles and zeroes the
// minutes of RESIDENT sessions, in one transaction so billing reads never
// observe a half-applied period boundary. STANDARD sessions are untouched.
func (dao *SessionDAO) MonthlyRollover(ctx context.Context) (int64, error) {
	logger := dao.Logger.With("query", "monthlyRollover")

	deleteQuery, deleteArgs, err := dao.Builder.
		Delete("sessions").
		Where(squirrel.Expr("vehicle_id IN (SELECT id FROM vehicles WHERE class = ?)", model.ClassOfficial)).
		ToSql()
	if err != nil {
		return 0, err
	}

	resetQuery, resetArgs, err := dao.Builder.
		Update("sessions").
		SetMap(map[string]any{
			"minutes":    0,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Expr("vehicle_id IN (SELECT id FROM vehicles WHERE class = ?)", model.ClassResident)).
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build queries", "deleteSql", deleteQuery, "resetSql", resetQuery)

	tx, err := dao.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)

		return 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, resetQuery, resetArgs...); err != nil {
		logger.Warn("failed query execute", "error", err)

		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logger.Debug("success query execute", "deletedSessions", deleted)

	return deleted, nil
}
