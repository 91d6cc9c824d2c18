package utils

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// SafeWriteFile writes data to a temp file and atomically renames it into
// place. The temp name carries a uuid so two runs pointed at the same output
// path never see each other's partial writes.
func SafeWriteFile(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
