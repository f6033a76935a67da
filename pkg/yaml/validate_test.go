package yaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goccyyaml "github.com/goccy/go-yaml"

	"github.com/macropower/modelkit/pkg/yaml"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want string
		err  yaml.Error
	}{
		"with path": {
			err: yaml.Error{
				Err:  errors.New("value is required"),
				Path: mustBuildPath(t, "field", "subfield"),
			},
			want: "error at $.field.subfield: value is required",
		},
		"without path": {
			err: yaml.Error{
				Err: errors.New("validation error: value is required"),
			},
			want: "validation error: value is required",
		},
		"empty detail": {
			err: yaml.Error{
				Err:  errors.New(""),
				Path: mustBuildPath(t, "field"),
			},
			want: "error at $.field: ",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestError_AnnotatesSource(t *testing.T) {
	t.Parallel()

	err := yaml.NewError(
		errors.New("expected integer"),
		yaml.WithPath(mustBuildPath(t, "nClasses")),
		yaml.WithSourceLines(2),
		yaml.WithSource([]byte(`name: demo
type: rule
dataset: iris
nClasses: "three"
nFeatures: 4
rules: []
supports: []`)),
	)

	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "expected integer")
	assert.Contains(t, msg, "nClasses")
	assert.Contains(t, msg, ">  ")
}

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		errMsg     string
		schemaData []byte
		wantErr    bool
	}{
		"valid schema": {
			schemaData: []byte(`{
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"nClasses": {"type": "number"}
				},
				"required": ["name"]
			}`),
			wantErr: false,
		},
		"invalid json": {
			schemaData: []byte(`{"invalid": json}`),
			wantErr:    true,
			errMsg:     "unmarshal schema",
		},
		"invalid schema": {
			schemaData: []byte(`{"type": "invalid_type"}`),
			wantErr:    true,
			errMsg:     "compile schema",
		},
		"empty schema": {
			schemaData: []byte(`{}`),
			wantErr:    false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := yaml.NewValidator("/test.json", tc.schemaData)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.errMsg)
				assert.Nil(t, v)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, v)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	schemaData := []byte(`{
		"type": "object",
		"properties": {
			"type": {"type": "string"},
			"supports": {
				"type": "array",
				"items": {"type": "array", "items": {"type": "number"}}
			}
		},
		"required": ["type"]
	}`)

	v := yaml.MustNewValidator("/test.json", schemaData)

	tcs := map[string]struct {
		data    any
		errPath string
		wantErr bool
	}{
		"valid data": {
			data: map[string]any{
				"type":     "rule",
				"supports": []any{[]any{3.0, 1.0}},
			},
			wantErr: false,
		},
		"missing required field": {
			data:    map[string]any{"supports": []any{}},
			wantErr: true,
		},
		"wrong nested type": {
			data: map[string]any{
				"type":     "rule",
				"supports": []any{[]any{"three"}},
			},
			wantErr: true,
			errPath: "$.supports[0][0]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(tc.data)

			if !tc.wantErr {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			if tc.errPath != "" {
				var yamlErr *yaml.Error
				require.ErrorAs(t, err, &yamlErr)
				require.NotNil(t, yamlErr.Path)
				assert.Equal(t, tc.errPath, yamlErr.Path.String())
			}
		})
	}
}

func mustBuildPath(t *testing.T, parts ...string) *goccyyaml.Path {
	t.Helper()

	pb := yaml.NewPathBuilder()
	current := pb.Root()

	for _, part := range parts {
		current = current.Child(part)
	}

	return current.Build()
}
