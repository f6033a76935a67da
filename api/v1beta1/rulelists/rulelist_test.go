package rulelists_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/modelkit/api/v1beta1"
	"github.com/macropower/modelkit/api/v1beta1/rulelists"
	"github.com/macropower/modelkit/pkg/yaml"
)

func TestNew(t *testing.T) {
	t.Parallel()

	rules := []rulelists.Rule{
		{
			Conditions: []rulelists.Condition{{Feature: 0, Category: 1}},
			Output:     []float64{0.9, 0.1},
		},
		{
			Output: []float64{0.2, 0.8},
		},
	}
	supports := [][]float64{{3, 1}, {2, 4}}

	rl := rulelists.New(v1beta1.ModelMeta{
		Name:      "demo",
		Dataset:   "adult",
		NFeatures: 12,
		NClasses:  2,
		Target:    "income",
	}, rules, supports)

	assert.Equal(t, "demo", rl.GetName())
	assert.Equal(t, "adult", rl.GetDataset())
	assert.Equal(t, 12, rl.GetNFeatures())
	assert.Equal(t, 2, rl.GetNClasses())
	assert.Equal(t, "income", rl.GetTarget())
	assert.Equal(t, rules, rl.Rules)
	assert.Equal(t, supports, rl.Supports)
	assert.True(t, v1beta1.IsRule(rl))
}

func TestNew_ForcesType(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		metaType v1beta1.ModelType
	}{
		"empty type":     {metaType: ""},
		"foreign type":   {metaType: v1beta1.ModelType("tree")},
		"already a rule": {metaType: v1beta1.TypeRule},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rl := rulelists.New(v1beta1.ModelMeta{Type: tc.metaType}, nil, nil)

			assert.Equal(t, v1beta1.TypeRule, rl.GetType())
		})
	}
}

func TestNew_AliasesContainers(t *testing.T) {
	t.Parallel()

	rules := []rulelists.Rule{{Output: []float64{1}}}
	supports := [][]float64{{10}}

	rl := rulelists.New(v1beta1.ModelMeta{}, rules, supports)

	// Mutations through the caller's references are visible to the model.
	rules[0].Output[0] = 42
	supports[0][0] = 7

	assert.InEpsilon(t, 42.0, rl.Rules[0].Output[0], 1e-9)
	assert.InEpsilon(t, 7.0, rl.Supports[0][0], 1e-9)
}

func TestRuleList_SetSupports(t *testing.T) {
	t.Parallel()

	rules := []rulelists.Rule{
		{Conditions: []rulelists.Condition{{Feature: 1, Category: 0}}, Output: []float64{0.75, 0.25}},
		{Output: []float64{0.33, 0.67}},
	}

	tcs := map[string]struct {
		err      error
		errMsg   string
		supports [][]float64
	}{
		"one entry per rule": {
			supports: [][]float64{{5, 0}, {1, 1}},
		},
		"too few entries": {
			supports: [][]float64{{5, 0}},
			err:      rulelists.ErrShapeMismatch,
			errMsg:   "got length 1, but 2 is expected",
		},
		"too many entries": {
			supports: [][]float64{{5, 0}, {1, 1}, {0, 0}},
			err:      rulelists.ErrShapeMismatch,
			errMsg:   "got length 3, but 2 is expected",
		},
		"nil input": {
			supports: nil,
			err:      rulelists.ErrShapeMismatch,
			errMsg:   "got length 0, but 2 is expected",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rl := rulelists.New(v1beta1.ModelMeta{}, rules, [][]float64{{3, 1}, {2, 4}})

			got, err := rl.SetSupports(tc.supports)

			// SetSupports always returns the receiver for chaining.
			assert.Same(t, rl, got)

			if tc.err != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.err)
				assert.ErrorContains(t, err, tc.errMsg)
				// A rejected update leaves the current supports in place.
				assert.Equal(t, [][]float64{{3, 1}, {2, 4}}, rl.Supports)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.supports, rl.Supports)
		})
	}
}

func TestRuleList_String(t *testing.T) {
	t.Parallel()

	rl := rulelists.New(v1beta1.ModelMeta{Name: "demo", Dataset: "adult"},
		make([]rulelists.Rule, 3), nil)

	assert.Equal(t, "demo: 3 rules on adult", rl.String())
}

func TestRuleList_MarshalTargetOptional(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		target      string
		wantAbsent  bool
		wantPresent string
	}{
		"target set": {
			target:      "income",
			wantPresent: `"target":"income"`,
		},
		"target empty": {
			target:     "",
			wantAbsent: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rl := rulelists.New(v1beta1.ModelMeta{Name: "demo", Target: tc.target}, nil, nil)

			data, err := json.Marshal(rl)
			require.NoError(t, err)

			if tc.wantAbsent {
				assert.NotContains(t, string(data), "target")
			} else {
				assert.Contains(t, string(data), tc.wantPresent)
			}

			// The YAML encoder honors the same tags.
			var buf bytes.Buffer

			enc := yaml.NewEncoder(&buf)
			require.NoError(t, enc.Encode(rl))

			if tc.wantAbsent {
				assert.NotContains(t, buf.String(), "target")
			} else {
				assert.Contains(t, buf.String(), "target: "+tc.target)
			}
		})
	}
}

func TestRuleList_RoundTrip(t *testing.T) {
	t.Parallel()

	rl := rulelists.New(v1beta1.ModelMeta{
		Name:      "iris-rules",
		Dataset:   "iris",
		NFeatures: 4,
		NClasses:  3,
		Target:    "species",
	}, []rulelists.Rule{
		{Conditions: []rulelists.Condition{{Feature: 2, Category: 0}}, Output: []float64{0.97, 0.03, 0}},
		{Output: []float64{0.02, 0.94, 0.04}},
	}, [][]float64{{29, 1, 0}, {1, 47, 2}})

	var buf bytes.Buffer

	require.NoError(t, yaml.NewEncoder(&buf).Encode(rl))

	got := &rulelists.RuleList{}
	require.NoError(t, yaml.NewDecoder(&buf).Decode(got))

	assert.Equal(t, rl, got)
}

func TestDefaultValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		errMsgs []string
	}{
		"valid document": {
			input: `
name: demo
type: rule
dataset: adult
nFeatures: 12
nClasses: 2
rules:
  - conditions:
      - feature: 0
        category: 1
    output: [0.9, 0.1]
supports:
  - [3, 1]
`,
		},
		"wrong type discriminator": {
			input: `
name: demo
type: tree
dataset: adult
nFeatures: 12
nClasses: 2
rules: []
supports: []
`,
			errMsgs: []string{"type"},
		},
		"negative feature index": {
			input: `
name: demo
type: rule
dataset: adult
nFeatures: 12
nClasses: 2
rules:
  - conditions:
      - feature: -1
        category: 0
    output: [1]
supports: [[4]]
`,
			errMsgs: []string{"feature"},
		},
		"missing required fields": {
			input: `
type: rule
rules: []
supports: []
`,
			errMsgs: []string{"name"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var doc any

			require.NoError(t, yaml.NewDecoder(bytes.NewReader([]byte(tc.input))).Decode(&doc))

			err := rulelists.DefaultValidator.Validate(doc)

			if len(tc.errMsgs) == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			for _, msg := range tc.errMsgs {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}
