package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/modelkit/api"
	"github.com/macropower/modelkit/api/v1beta1"
	"github.com/macropower/modelkit/api/v1beta1/rulelists"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setupFile func(t *testing.T) string
		wantErr   bool
	}{
		"valid file": {
			setupFile: func(t *testing.T) string {
				t.Helper()

				path := filepath.Join(t.TempDir(), "model.yaml")
				err := os.WriteFile(path, []byte("name: demo"), 0o600)
				require.NoError(t, err)

				return path
			},
			wantErr: false,
		},
		"non-existent file": {
			setupFile: func(t *testing.T) string {
				t.Helper()

				return "/non/existent/model.yaml"
			},
			wantErr: true,
		},
		"directory instead of file": {
			setupFile: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := tc.setupFile(t)

			data, err := api.ReadFile(path)

			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	rl := rulelists.New(v1beta1.ModelMeta{
		Name:      "demo",
		Dataset:   "adult",
		NFeatures: 12,
		NClasses:  2,
	}, []rulelists.Rule{
		{Conditions: []rulelists.Condition{{Feature: 0, Category: 1}}, Output: []float64{0.9, 0.1}},
	}, [][]float64{{3, 1}})

	data, err := api.MarshalYAML(rl)
	require.NoError(t, err)

	got := string(data)
	assert.Contains(t, got, "name: demo")
	assert.Contains(t, got, "type: rule")
	assert.Contains(t, got, "rules:")
	assert.Contains(t, got, "supports:")
	assert.NotContains(t, got, "target")
}
