package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tpp-demo/internal/domain"
)

// FileConfigRepository implements the ConfigRepository interface for a seed
// document on disk. ".json" files are decoded as JSON, anything else as YAML.
type FileConfigRepository struct {
	path string
}

// NewFileConfigRepository creates a new repository instance.
func NewFileConfigRepository(path string) *FileConfigRepository {
	return &FileConfigRepository{path: path}
}

// Load reads and decodes the seed document.
func (r *FileConfigRepository) Load(ctx context.Context) (*domain.Config, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed document %s: %w", r.path, err)
	}

	cfg, err := DecodeConfig(data, filepath.Ext(r.path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed document %s: %w", r.path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a seed document in the format named by ext.
func DecodeConfig(data []byte, ext string) (*domain.Config, error) {
	var cfg domain.Config
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	if len(cfg.Banks) == 0 {
		return nil, fmt.Errorf("seed document has no banks")
	}
	return &cfg, nil
}
