package parking

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/protomem/parking-tracker/internal/model"
)

const _reportFileName = "parking_monthly.txt"

// Reporter writes the monthly settlement document for RESIDENT vehicles:
// one row per vehicle with its total parked minutes and the amount due.
type Reporter struct {
	Logger   *slog.Logger
	Dir      string
	Sessions SessionStore
	Billing  *Billing
}

func NewReporter(logger *slog.Logger, dir string, sessions SessionStore, billing *Billing) *Reporter {
	return &Reporter{
		Logger:   logger.With("service", "reporter"),
		Dir:      dir,
		Sessions: sessions,
		Billing:  billing,
	}
}

// Monthly generates the report file and returns its path.
func (rep *Reporter) Monthly(ctx context.Context) (string, error) {
	sessions, err := rep.Sessions.AllByClass(ctx, model.ClassResident)
	if err != nil {
		return "", err
	}

	if len(sessions) == 0 {
		return "", model.NewError("resident sessions", model.ErrEmpty)
	}

	totalsByPlate := make(map[string]int)
	for _, session := range sessions {
		totalsByPlate[session.Vehicle] += session.Minutes
	}

	plates := maps.Keys(totalsByPlate)
	sort.Strings(plates)

	if err := os.MkdirAll(rep.Dir, 0o755); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	path := filepath.Join(rep.Dir, _reportFileName)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	if err := rep.write(ctx, file, plates, totalsByPlate); err != nil {
		file.Close() //nolint:errcheck // already failing
		return "", fmt.Errorf("write report: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	rep.Logger.Info("monthly report written", "path", path, "countVehicles", len(plates))

	return path, nil
}

func (rep *Reporter) write(ctx context.Context, file *os.File, plates []string, totalsByPlate map[string]int) error {
	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "%-12s %-25s %-20s\n", "Plate", "Parked time (min)", "Amount due")
	fmt.Fprintln(w, "----------------------------------------------")

	for _, plate := range plates {
		fee, err := rep.Billing.Fee(ctx, plate)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%-12s %-25d %-20.2f\n", plate, totalsByPlate[plate], fee)
	}

	return w.Flush()
}
