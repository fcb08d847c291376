package ledger

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
)

var csvHeader = []string{"NUM", "UNIT", "ITEM", "DATE"}

// ExportCSV writes every entry to path and returns the number of rows written.
func (l *ledgerImpl) ExportCSV(path string) (int, error) {
	entries, err := l.Entries()
	if err != nil {
		return 0, err
	}

	if len(entries) == 0 {
		return 0, ErrNoEntries
	}

	file, err := l.fileSys.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create csv file: %w", err)
	}

	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			strconv.FormatFloat(e.Quantity, 'f', -1, 64),
			e.Unit,
			e.Item,
			e.Date,
		}

		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush csv: %w", err)
	}

	l.logger.Info("Exported ledger", slog.String("path", path), slog.Int("rows", len(entries)))

	return len(entries), nil
}
