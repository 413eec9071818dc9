package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Archive keeps raw import payloads received over the API so a failed run can
// be replayed with the import command.
type Archive struct {
	Dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{
		Dir: dir,
	}
}

// Save writes payload to a file with a UUID4 filename and returns the filename.
// Payloads that are not valid JSON are stored as-is.
func (a *Archive) Save(payload []byte) (string, error) {
	if err := a.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to ensure archive directory: %w", err)
	}

	filename := uuid.New().String() + ".json"
	path := filepath.Join(a.Dir, filename)

	data := payload
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err == nil {
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}
	log.Printf("[AUDIT] Archived import payload: %s", path)

	return filename, nil
}

// Path returns the location of an archived payload.
func (a *Archive) Path(filename string) string {
	return filepath.Join(a.Dir, filepath.Base(filename))
}

func (a *Archive) ensureDir() error {
	if _, err := os.Stat(a.Dir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	return nil
}
