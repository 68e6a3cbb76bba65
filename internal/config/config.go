package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	utiljson "filemirror/internal/util/utilJson"
)

// DefaultPath is where the config lives, relative to the working directory.
const DefaultPath = "filemirror.json"

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// WatchConfig is loaded once per process and never mutated afterwards.
type WatchConfig struct {
	SourceFolder      string `json:"source_folder"`
	DestinationFolder string `json:"destination_folder"`
	TargetFileName    string `json:"file_name"`
	ExtensionFilter   string `json:"file_extension"`
	StartupCopyFile   string `json:"copy_file"`

	Env         string `json:"env,omitempty" env-default:"local"`
	LogFile     string `json:"log_file,omitempty"`
	JournalFile string `json:"journal_file,omitempty"`
}

// Load reads and validates the config at path. A missing file is reported
// as ErrConfigNotFound so the caller can fall back to first-run setup.
func Load(path string) (*WatchConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg WatchConfig

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *WatchConfig) Validate() error {
	if c.SourceFolder == "" {
		return fmt.Errorf("%w: source_folder is empty", ErrInvalidConfig)
	}
	info, err := os.Stat(c.SourceFolder)
	if err != nil {
		return fmt.Errorf("%w: source_folder: %v", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source_folder %s is not a directory", ErrInvalidConfig, c.SourceFolder)
	}

	if c.DestinationFolder == "" {
		return fmt.Errorf("%w: destination_folder is empty", ErrInvalidConfig)
	}

	if c.TargetFileName == "" {
		return fmt.Errorf("%w: file_name is empty", ErrInvalidConfig)
	}
	if filepath.Base(c.TargetFileName) != c.TargetFileName {
		return fmt.Errorf("%w: file_name %q must not contain a directory", ErrInvalidConfig, c.TargetFileName)
	}

	if c.StartupCopyFile != "" && filepath.Base(c.StartupCopyFile) != c.StartupCopyFile {
		return fmt.Errorf("%w: copy_file %q must not contain a directory", ErrInvalidConfig, c.StartupCopyFile)
	}

	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("%w: unknown env %q", ErrInvalidConfig, c.Env)
	}

	return nil
}

// Save writes cfg as JSON, replacing whatever is at path.
func Save(path string, cfg *WatchConfig) error {
	data, err := utiljson.ToJson(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
