package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func mkSessionDir(root, sid string) (string, error) {
	dir := filepath.Join(root, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist writes <outputs>/<session>/result.json and returns its path.
func persist(outputsRoot string, s *Session) (string, error) {
	dir, err := mkSessionDir(outputsRoot, s.ID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "result.json")
	if err := writeJSON(path, s); err != nil {
		return "", err
	}
	return path, nil
}
