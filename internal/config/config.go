package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{"binop.yaml", "binop.yml", "binop.toml"}

// Default values.
const (
	DefaultVersion    = "1"
	DefaultExpandAttr = "binop"
	DefaultReadAttr   = "read_binop_impl"
	DefaultSuffix     = ".expanded.rs"
)

// Config is the project configuration.
type Config struct {
	Version    string     `yaml:"version" toml:"version"`
	Attributes Attributes `yaml:"attributes" toml:"attributes"`
	Output     Output     `yaml:"output" toml:"output"`
	// Trace forces dev tracing for every annotated item.
	Trace bool `yaml:"trace,omitempty" toml:"trace,omitempty"`
}

// Attributes names the attributes that trigger the two entry points.
// Names are matched against the last path segment of an attribute.
type Attributes struct {
	Expand []string `yaml:"expand,omitempty" toml:"expand,omitempty"`
	Read   []string `yaml:"read,omitempty" toml:"read,omitempty"`
}

// Output controls where expanded files go.
type Output struct {
	// Dir is the output directory. Empty means next to each input file.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
	// Suffix replaces the input's .rs extension.
	Suffix string `yaml:"suffix,omitempty" toml:"suffix,omitempty"`
	// Header prepends a generated-code banner to every output file.
	Header bool `yaml:"header,omitempty" toml:"header,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	var c Config

	applyDefaults(&c)

	return &c
}

// LoadFile loads a YAML or TOML configuration file, chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse parses configuration data. ext selects the format: ".toml" for
// TOML, anything else for YAML.
func Parse(data []byte, ext string) (*Config, error) {
	var c Config

	if strings.EqualFold(ext, ".toml") {
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	// Apply defaults and normalize
	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if len(c.Attributes.Expand) == 0 {
		c.Attributes.Expand = []string{DefaultExpandAttr}
	}

	if len(c.Attributes.Read) == 0 {
		c.Attributes.Read = []string{DefaultReadAttr}
	}

	if c.Output.Suffix == "" {
		c.Output.Suffix = DefaultSuffix
	}
}

// Find searches for a configuration file starting from dir and walking up
// to parent directories, stopping at a .git boundary. Returns the path and
// the parsed config, or ("", nil, nil) if not found.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				c, err := LoadFile(path)
				if err != nil {
					return "", nil, err
				}

				return path, c, nil
			}
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}

		dir = parent
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// OutputName returns the output file name for an input path.
func (c *Config) OutputName(input string) string {
	base := filepath.Base(input)

	return strings.TrimSuffix(base, filepath.Ext(base)) + c.Output.Suffix
}
