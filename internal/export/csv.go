package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/aura/internal/store"
)

// SessionsToCSV writes the focus session log to path, one row per session.
func SessionsToCSV(sessions []store.FocusSession, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Type", "Duration (min)", "Completed"}); err != nil {
		return err
	}

	for _, s := range sessions {
		row := []string{
			s.ID,
			s.Date.Local().Format(time.RFC3339),
			string(s.Type),
			fmt.Sprintf("%d", s.Duration),
			fmt.Sprintf("%t", s.Completed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
