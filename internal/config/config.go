package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rhyanvargas/interactive-transcript/internal/subtitle"
)

const (
	EnvSegmentDuration  = "TRANSCRIPT_SEGMENT_DURATION"
	EnvSpeakerDetection = "TRANSCRIPT_SPEAKER_DETECTION"
	EnvOutputFormat     = "TRANSCRIPT_OUTPUT_FORMAT"
)

// Config holds all configuration for the CLI
type Config struct {
	Transform TransformConfig `yaml:"transform"`
	Output    OutputConfig    `yaml:"output"`
}

// TransformConfig holds defaults for text to cue conversion
type TransformConfig struct {
	SegmentDuration  float64 `yaml:"segment_duration"`
	SpeakerDetection bool    `yaml:"speaker_detection"`
	TimestampFormat  string  `yaml:"timestamp_format"`
}

// OutputConfig holds defaults for written files
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := subtitle.DefaultTransformOptions()
	return &Config{
		Transform: TransformConfig{
			SegmentDuration:  opts.SegmentDuration,
			SpeakerDetection: opts.SpeakerDetection,
			TimestampFormat:  string(opts.TimestampFormat),
		},
		Output: OutputConfig{
			Format: string(subtitle.FormatVTT),
		},
	}
}

// Load reads configuration with the following priority:
// Environment variables > Config file > Defaults.
// An empty path means the default location; a missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	config := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnv(config *Config) error {
	if v := os.Getenv(EnvSegmentDuration); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSegmentDuration, v, err)
		}
		config.Transform.SegmentDuration = d
	}
	if v := os.Getenv(EnvSpeakerDetection); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSpeakerDetection, v, err)
		}
		config.Transform.SpeakerDetection = b
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		config.Output.Format = v
	}
	return nil
}

// Validate checks values that would otherwise fail later in a command
func (c *Config) Validate() error {
	opts := c.TransformOptions()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid transform config: %w", err)
	}
	if _, err := subtitle.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output config: %w", err)
	}
	return nil
}

// TransformOptions converts the transform section for the subtitle package
func (c *Config) TransformOptions() subtitle.TransformOptions {
	return subtitle.TransformOptions{
		SegmentDuration:  c.Transform.SegmentDuration,
		SpeakerDetection: c.Transform.SpeakerDetection,
		TimestampFormat:  subtitle.TimestampFormat(c.Transform.TimestampFormat),
	}
}

// InitConfig writes a commented default configuration file to path, or to
// the default location when path is empty
func InitConfig(path string) (string, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	d := Default()
	yamlContent := fmt.Sprintf(`# interactive-transcript configuration file

transform:
  # seconds per generated cue; about 150 words per minute are assumed
  segment_duration: %g
  # detect "Name:", "[Name]" and "NAME:" speaker prefixes
  speaker_detection: %t
  # seconds or timecode
  timestamp_format: %s

output:
  # vtt, srt, ass or json
  format: %s
`, d.Transform.SegmentDuration, d.Transform.SpeakerDetection,
		d.Transform.TimestampFormat, d.Output.Format)

	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

// GetConfigPath returns the default config file path
// (~/.interactive-transcript/config.yaml)
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".interactive-transcript", "config.yaml"), nil
}
