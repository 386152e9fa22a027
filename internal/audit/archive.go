package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Archiver writes import reports as JSON files so a committed batch can be
// inspected after the fact. An Archiver with an empty Dir is disabled.
type Archiver struct {
	Dir string
}

func NewArchiver(dir string) *Archiver {
	return &Archiver{Dir: dir}
}

// Enabled reports whether reports are written at all.
func (a *Archiver) Enabled() bool {
	return a != nil && a.Dir != ""
}

// Save writes data to <prefix>_<uuid>.json inside Dir and returns the file name.
func (a *Archiver) Save(prefix string, data any) (string, error) {
	if !a.Enabled() {
		return "", nil
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if prefix == "" {
		prefix = "import"
	}
	filename := fmt.Sprintf("%s_%s.json", sanitizePrefix(prefix), uuid.New().String())
	path := filepath.Join(a.Dir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	log.Printf("[IMPORT] Saved import report %s", path)
	return filename, nil
}

// sanitizePrefix keeps file names portable; import tags are user-provided.
func sanitizePrefix(prefix string) string {
	out := make([]rune, 0, len(prefix))
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
