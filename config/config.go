// Package config holds the settings that tune loading and saving.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rjkroege/textpad/codec"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is wrapped by every error Validate returns.
var ErrInvalidSettings = errors.New("invalid settings")

// PlatformLineEnding selects codec.PlatformLineEnding for new documents.
const PlatformLineEnding = "platform"

// Settings are read from a YAML file. Fields missing from the file keep
// their defaults.
type Settings struct {
	LargeFileThreshold int64  `yaml:"large_file_threshold"`
	DetectionSize      int    `yaml:"detection_size"`
	DecodeBlockSize    int    `yaml:"decode_block_size"`
	DefaultEncoding    string `yaml:"default_encoding"`
	DefaultLineEnding  string `yaml:"default_line_ending"`
	ShowFilePath       bool   `yaml:"show_file_path"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		LargeFileThreshold: 10 << 20,
		DetectionSize:      1 << 10,
		DecodeBlockSize:    16 << 10,
		DefaultEncoding:    codec.UTF8,
		DefaultLineEnding:  PlatformLineEnding,
	}
}

// DefaultPath is settings.yaml in the textpad directory under the user's
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "textpad", "settings.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating its directory.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) Validate() error {
	var problems []string
	if s.LargeFileThreshold <= 0 {
		problems = append(problems, "large_file_threshold must be positive")
	}
	if s.DetectionSize <= 0 {
		problems = append(problems, "detection_size must be positive")
	}
	if s.DecodeBlockSize <= 0 {
		problems = append(problems, "decode_block_size must be positive")
	}
	if s.DefaultEncoding == "" {
		problems = append(problems, "default_encoding is empty")
	} else if !codec.Default().Valid(s.DefaultEncoding) {
		problems = append(problems, fmt.Sprintf("default_encoding %q is unknown", s.DefaultEncoding))
	}
	if _, err := s.LineEnding(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// LineEnding resolves DefaultLineEnding.
func (s *Settings) LineEnding() (codec.LineEnding, error) {
	if s.DefaultLineEnding == "" || strings.EqualFold(s.DefaultLineEnding, PlatformLineEnding) {
		return codec.PlatformLineEnding(), nil
	}
	return codec.ParseLineEnding(s.DefaultLineEnding)
}
