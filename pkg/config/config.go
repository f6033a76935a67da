package config

import (
	"fmt"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/macropower/modelkit/api"
	"github.com/macropower/modelkit/pkg/yaml"
)

//go:generate go run ../../internal/schemagen/config/main.go -o config.v1beta1.json

var (
	//go:embed config.v1beta1.json
	schemaJSON []byte

	// DefaultValidator validates configuration documents against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/config.v1beta1.json", schemaJSON)
)

// Config holds user defaults for rendering models.
type Config struct {
	// Datasets maps dataset names to display settings for models trained
	// on that dataset.
	Datasets map[string]Dataset `json:"datasets,omitempty" jsonschema:"title=Datasets"`
	// Label is the default label for rule output vectors.
	Label string `json:"label,omitempty" jsonschema:"title=Label"`
}

// Dataset holds display settings for a single dataset.
type Dataset struct {
	// FeatureNames are display names for feature indices, in index order.
	FeatureNames []string `json:"featureNames,omitempty" jsonschema:"title=Feature Names"`
	// Label overrides the top-level label for models on this dataset.
	Label string `json:"label,omitempty" jsonschema:"title=Label"`
}

func NewConfig() *Config {
	return &Config{}
}

// GetPath returns the path to the modelkit configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}

// LabelFor returns the configured label for the given dataset, with the
// dataset-specific label taking precedence over the top-level one.
func (c *Config) LabelFor(dataset string) string {
	if ds, ok := c.Datasets[dataset]; ok && ds.Label != "" {
		return ds.Label
	}

	return c.Label
}

// FeatureNamesFor returns the configured feature names for the given
// dataset, or nil when none are configured.
func (c *Config) FeatureNamesFor(dataset string) []string {
	if ds, ok := c.Datasets[dataset]; ok {
		return ds.FeatureNames
	}

	return nil
}

// Write writes the configuration to the given path, creating parent
// directories as needed. An existing regular file is left untouched.
func (c *Config) Write(path string) error {
	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		if err == nil && pathInfo.Mode().IsRegular() {
			return nil // Config already exists.
		}
		if pathInfo.IsDir() {
			return fmt.Errorf("%s: path is a directory", path)
		}

		return fmt.Errorf("%s: unknown file state", path)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	b, err := api.MarshalYAML(c)
	if err != nil {
		return err //nolint:wrapcheck // Return the original error.
	}

	err = os.WriteFile(path, b, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
