package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/aura/internal/store"
)

// Snapshot is the full-data export: every collection in one document, in the
// same shape the store persists, so an export can serve as a backup.
type Snapshot struct {
	Tasks      []store.Task         `json:"tasks"`
	DailyTasks []store.DailyTask    `json:"dailyTasks"`
	Sessions   []store.FocusSession `json:"focusSessions"`
	Goals      []store.FocusGoal    `json:"focusGoals"`
}

type jsonExport struct {
	ExportedAt string `json:"exported_at"`
	Snapshot
}

func ToJSON(snap Snapshot, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Snapshot:   snap,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
