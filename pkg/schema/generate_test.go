package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/modelkit/api/v1beta1/rulelists"
	"github.com/macropower/modelkit/pkg/schema"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	gen := schema.NewGenerator(&rulelists.RuleList{}, "github.com/macropower/modelkit")

	jsData, err := gen.Generate()
	require.NoError(t, err)

	var jss map[string]any

	err = json.Unmarshal(jsData, &jss)
	require.NoError(t, err)

	defs, ok := jss["$defs"].(map[string]any)
	require.True(t, ok)

	ruleList, ok := defs["RuleList"].(map[string]any)
	require.True(t, ok)

	props, ok := ruleList["properties"].(map[string]any)
	require.True(t, ok)

	for _, field := range []string{
		"name", "type", "dataset", "nFeatures", "nClasses", "target", "rules", "supports",
	} {
		assert.Contains(t, props, field)
	}

	// The type discriminator is constrained to the valid literals.
	typeProp, ok := props["type"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, typeProp, "oneOf")
}

func TestGenerator_Generate_BadCommentDir(t *testing.T) {
	t.Parallel()

	gen := schema.NewGenerator(&rulelists.RuleList{},
		"github.com/macropower/modelkit", "./does-not-exist",
	)

	_, err := gen.Generate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "add go comments")
}
