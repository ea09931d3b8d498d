package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"portfolio-service/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// Default returns the built-in profile used for an initial deployment.
func Default() (*models.Profile, error) {
	return decode(defaultProfile, ".yaml")
}

// Load reads a profile from a .json, .yaml or .yml file.
func Load(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return decode(data, strings.ToLower(filepath.Ext(path)))
}

func decode(data []byte, ext string) (*models.Profile, error) {
	var profile models.Profile

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed file type %q", ext)
	}

	return &profile, nil
}
