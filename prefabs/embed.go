package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskDir is checked before the embedded copies so edits under it take
// effect without a rebuild.
var DiskDir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Load reads a prefab by name.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return nil, fmt.Errorf("prefabs: empty name")
	}
	return read(clean)
}

// LoadScript reads a tengo script from the scripts directory.
func LoadScript(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return nil, fmt.Errorf("prefabs: empty script name")
	}
	if !strings.HasPrefix(clean, "scripts/") {
		clean = path.Join("scripts", clean)
	}
	return read(clean)
}

func read(clean string) ([]byte, error) {
	if DiskDir != "" {
		if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	data, err := embedded.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", clean, err)
	}
	return data, nil
}

// Name maps any path under a prefabs directory to the name Load expects.
func Name(p string) string {
	s := filepath.ToSlash(p)
	if i := strings.LastIndex(s, "prefabs/"); i >= 0 {
		s = s[i+len("prefabs/"):]
	}
	return s
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "prefabs/")
}
