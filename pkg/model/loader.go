package model

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/macropower/modelkit/api"
	"github.com/macropower/modelkit/api/v1beta1"
	"github.com/macropower/modelkit/api/v1beta1/rulelists"
	"github.com/macropower/modelkit/pkg/yaml"
)

// ErrUnknownModelType is returned when a document's type discriminator
// does not name a variant this module can represent.
var ErrUnknownModelType = errors.New("unknown model type")

// Validator validates model data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator Validator
}

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// Loader is a generic model loader that handles validation, YAML
// parsing, and error formatting for any model variant T.
type Loader[T v1beta1.Model] struct {
	validator Validator
	newFunc   func() T
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
// The newFunc parameter is the constructor for type T.
func NewLoaderFromBytes[T v1beta1.Model](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	options := &loaderOptions{
		validator: defaultValidator,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: options.validator,
		yamlError: yaml.NewErrorWrapper(
			yaml.WithSource(data),
			yaml.WithSourceLines(4),
		),
	}
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile[T v1beta1.Model](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Validate validates the model data against the schema.
func (l *Loader[T]) Validate() error {
	var anyModel any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyModel)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyModel)
		if err != nil {
			return l.yamlError.Wrap(err)
		}
	}

	return nil
}

// Load parses and returns the model.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	m := l.newFunc()

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(m)
	if err != nil {
		var zero T

		return zero, l.yamlError.Wrap(err)
	}

	return m, nil
}

// LoadFile reads a model document from disk and returns its concrete
// variant, selected by the type discriminator.
//
//nolint:ireturn // Callers narrow with [v1beta1.IsRule] and friends.
func LoadFile(path string) (v1beta1.Model, error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return LoadBytes(data)
}

// LoadBytes decodes one model document and returns its concrete variant.
// Documents are validated against the variant's schema before decoding.
//
//nolint:ireturn // Callers narrow with [v1beta1.IsRule] and friends.
func LoadBytes(data []byte) (v1beta1.Model, error) {
	mt := DetectType(data)

	switch mt {
	case v1beta1.TypeRule:
		l := NewLoaderFromBytes(data,
			func() *rulelists.RuleList { return &rulelists.RuleList{} },
			rulelists.DefaultValidator,
		)

		err := l.Validate()
		if err != nil {
			return nil, err
		}

		return l.Load()
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, mt)
}

// ValidateFile validates a model document on disk against the schema for
// its variant, without constructing the model.
func ValidateFile(path string) error {
	data, err := api.ReadFile(path)
	if err != nil {
		return err //nolint:wrapcheck // Return the original error.
	}

	mt := DetectType(data)

	switch mt {
	case v1beta1.TypeRule:
		l := NewLoaderFromBytes(data,
			func() *rulelists.RuleList { return &rulelists.RuleList{} },
			rulelists.DefaultValidator,
		)

		return l.Validate()
	}

	return fmt.Errorf("%w: %q", ErrUnknownModelType, mt)
}

// DetectType extracts the type discriminator from a model document,
// without decoding the whole document. It returns an empty type when no
// discriminator can be found.
func DetectType(data []byte) v1beta1.ModelType {
	var typeName string

	path := yaml.NewPathBuilder().Root().Child("type").Build()

	err := path.Read(bytes.NewReader(data), &typeName)
	if err == nil {
		return v1beta1.ModelType(typeName)
	}

	slog.Debug("could not read type discriminator, document might be invalid")

	// As a last-ditch effort, try to get the type using regex.
	// This is a fallback if the document is malformed.
	typeName = extractTypeWithRegex(data)

	return v1beta1.ModelType(typeName)
}

// extractTypeWithRegex attempts to extract the type discriminator from
// YAML data using regex. This is done so that type errors can still be
// reported when the document is not valid YAML. It looks for a top-level
// `type: <value>` mapping and extracts the value, which may be quoted.
func extractTypeWithRegex(data []byte) string {
	// Pattern explanation:
	// (?m) - multiline mode
	// ^type:\s* - matches "type:" at start of line with optional whitespace
	// (?:"([^"#\n]+)"|'([^'#\n]+)'|([^\s#\n]+)) - captures quoted or unquoted value.
	typePattern := `(?m)^type:\s*(?:"([^"#\n]+)"|'([^'#\n]+)'|([^\s#\n]+))`

	typeRe := regexp.MustCompile(typePattern)
	typeMatches := typeRe.FindStringSubmatch(string(data))

	if len(typeMatches) >= 4 {
		// Check which capture group matched (double quote, single quote, or unquoted).
		for i := 1; i < 4; i++ {
			if typeMatches[i] != "" {
				return strings.TrimSpace(typeMatches[i])
			}
		}
	}

	return ""
}
