package lbunit

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration keys used by the hello application.
const (
	ConfigAppDir     = "app-dir"
	ConfigAppVenvDir = "app-venv-dir"
	ConfigAppRepoURL = "app-repo-url"
)

// Config is an immutable key-value configuration record supplied by the
// deployment environment.
type Config struct {
	values map[string]string
}

// NewConfig returns a configuration record holding a copy of values.
func NewConfig(values map[string]string) Config {
	return Config{values: maps.Clone(values)}
}

// Get returns the value for key. It returns false if the key is missing or
// its value is empty.
func (c Config) Get(key string) (string, bool) {
	value, ok := c.values[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Value returns the value for key, or an empty string if it is missing.
func (c Config) Value(key string) string {
	value, _ := c.Get(key)
	return value
}

// Keys returns the keys present in the record in lexical order.
func (c Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Values returns a copy of the record's values.
func (c Config) Values() map[string]string {
	return maps.Clone(c.values)
}

// Require returns an error naming every key that is missing or empty.
func (c Config) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if _, ok := c.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return MissingConfigError{Keys: missing}
	}
	return nil
}

// MissingConfigError is returned when required configuration is absent.
type MissingConfigError struct {
	Keys []string
}

// Error returns the error as a string.
func (e MissingConfigError) Error() string {
	if len(e.Keys) == 1 {
		return fmt.Sprintf("the \"%s\" configuration option is required", e.Keys[0])
	}
	return fmt.Sprintf("the following configuration options are required: %s", strings.Join(e.Keys, ", "))
}

// configOption is an option definition in a charm-style config schema.
type configOption struct {
	Type        string `yaml:"type"`
	Default     any    `yaml:"default"`
	Description string `yaml:"description"`
}

// LoadConfig reads a configuration record from a YAML file.
//
// The file may contain flat "key: value" pairs, an "options" section of
// option definitions with defaults, or both. Flat values take priority over
// option defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("missing configuration file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	config, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("configuration file \"%s\": %w", path, err)
	}
	return config, nil
}

// ParseConfig parses a configuration record from YAML data.
func ParseConfig(data []byte) (Config, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, err
	}

	values := make(map[string]string)

	// Apply option defaults first.
	if node, ok := doc["options"]; ok {
		var options map[string]configOption
		if err := node.Decode(&options); err != nil {
			return Config{}, fmt.Errorf("options: %w", err)
		}
		for key, option := range options {
			if option.Default == nil {
				continue
			}
			values[key] = fmt.Sprint(option.Default)
		}
	}

	// Then apply flat values.
	for key, node := range doc {
		if key == "options" {
			continue
		}
		if node.Kind != yaml.ScalarNode {
			return Config{}, fmt.Errorf("the \"%s\" configuration option must be a scalar value", key)
		}
		if node.ShortTag() == "!!null" {
			continue
		}
		values[key] = node.Value
	}

	return Config{values: values}, nil
}
