package config

import (
	"bytes"
	"errors"
	"io/fs"

	"github.com/macropower/modelkit/api"
	"github.com/macropower/modelkit/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader handles validation, YAML parsing, and error formatting for
// configuration data.
type Loader struct {
	validator Validator
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{
		data:      data,
		validator: DefaultValidator,
		yamlError: yaml.NewErrorWrapper(
			yaml.WithSource(data),
			yaml.WithSourceLines(4),
		),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Load validates and parses the configuration data.
func (l *Loader) Load() (*Config, error) {
	if len(bytes.TrimSpace(l.data)) == 0 {
		return NewConfig(), nil
	}

	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyConfig)
	if err != nil {
		return nil, l.yamlError.Wrap(err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyConfig)
		if err != nil {
			return nil, l.yamlError.Wrap(err)
		}
	}

	c := NewConfig()

	dec = yaml.NewDecoder(bytes.NewReader(l.data))

	err = dec.Decode(c)
	if err != nil {
		return nil, l.yamlError.Wrap(err)
	}

	return c, nil
}

// LoadFile loads the configuration at path. A missing file is not an
// error; callers get the zero configuration instead.
func LoadFile(path string) (*Config, error) {
	l, err := NewLoaderFromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewConfig(), nil
		}

		return nil, err
	}

	return l.Load()
}
