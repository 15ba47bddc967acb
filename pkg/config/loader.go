package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed schema.json
	configSchema []byte

	ErrInvalidConfig = errors.New("invalid configuration file")
)

// fileDocument mirrors the on-disk layout of a configuration file. Every field is optional, unset ones keep the
// value they already had in the WatermarkConfig being populated
type fileDocument struct {
	Channel          *string `json:"channel"`
	PngCompression   *string `json:"png_compression"`
	OutputFormat     *string `json:"output_format"`
	AllowLossyOutput *bool   `json:"allow_lossy_output"`
	ReportPath       *string `json:"report_path"`
	ReportDatabase   *string `json:"report_database"`
	LogLevel         *string `json:"log_level"`
}

// LoadFile reads a toml, yaml or json configuration file and applies it on top of the defaults
func LoadFile(path string) (WatermarkConfig, error) {
	cfg := DefaultWatermarkConfig()
	if err := ApplyFile(&cfg, path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyFile overlays the settings found in the file at path onto cfg
func ApplyFile(cfg *WatermarkConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	raw, err := decodeDocument(filepath.Ext(path), data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	// Every format is funnelled through JSON so a single schema covers all of them
	normalised, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err = validateDocument(normalised); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	var doc fileDocument
	if err = json.Unmarshal(normalised, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return doc.applyTo(cfg)
}

func decodeDocument(ext string, data []byte) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
	return raw, nil
}

func validateDocument(normalised []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchema)); err != nil {
		return err
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return err
	}

	var instance interface{}
	if err = json.Unmarshal(normalised, &instance); err != nil {
		return err
	}
	return schema.Validate(instance)
}

func (d fileDocument) applyTo(cfg *WatermarkConfig) error {
	if d.Channel != nil {
		channel, err := ParseChannel(*d.Channel)
		if err != nil {
			return err
		}
		cfg.Channel = channel
	}
	if d.PngCompression != nil {
		level, err := ParsePngCompression(*d.PngCompression)
		if err != nil {
			return err
		}
		cfg.PngCompressionLevel = level
	}
	if d.OutputFormat != nil {
		format, err := ParseOutputFormat(*d.OutputFormat)
		if err != nil {
			return err
		}
		cfg.OutputFormat = format
	}
	if d.AllowLossyOutput != nil {
		cfg.AllowLossyOutput = *d.AllowLossyOutput
	}
	if d.ReportPath != nil {
		cfg.ReportPath = *d.ReportPath
	}
	if d.ReportDatabase != nil {
		cfg.ReportDatabase = *d.ReportDatabase
	}
	if d.LogLevel != nil {
		level, err := ParseLogLevel(*d.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	return nil
}

func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
