// Package rulelists provides the rule-based model variant for modelkit.
package rulelists

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/modelkit/api/v1beta1"
	"github.com/macropower/modelkit/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen/rulelists/main.go -o rulelists.v1beta1.json

var (
	//go:embed rulelists.v1beta1.json
	schemaJSON []byte

	// ValidTypes contains the type discriminator values for rule models.
	ValidTypes = []v1beta1.ModelType{v1beta1.TypeRule}

	// DefaultValidator validates rule model documents against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/rulelists.v1beta1.json", schemaJSON)

	// ErrShapeMismatch is returned when replacement support statistics do
	// not contain exactly one entry per rule.
	ErrShapeMismatch = errors.New("supports shape mismatch")

	// Compile-time interface checks.
	_ v1beta1.Model = (*RuleList)(nil)
)

// Condition is a single feature/category equality test within a rule.
// Both fields are indices into externally defined feature and category
// spaces; no bounds are enforced here.
type Condition struct {
	// Feature is the index of the input feature this clause inspects.
	Feature int `json:"feature" jsonschema:"title=Feature,minimum=0"`
	// Category is the categorical value (or discretized bucket) the
	// feature must match.
	Category int `json:"category" jsonschema:"title=Category,minimum=0"`
}

// Rule is an ordered conjunction of conditions plus an output vector.
// A rule fires when all of its conditions match; a rule with no
// conditions always fires, which makes it the default rule in a list.
type Rule struct {
	// Conditions is the ordered clause sequence. Order has no effect on
	// matching but may reflect feature precedence in display.
	Conditions []Condition `json:"conditions" jsonschema:"title=Conditions"`
	// Output is the class-score vector produced when the rule fires.
	Output []float64 `json:"output" jsonschema:"title=Output"`
}

// RuleList is an ordered rule-list model. Rule order matters; whether
// the semantics are first-match-wins or priority-based is decided by the
// consuming inference engine, not by this type.
//
// All fields except Supports are fixed after construction. Supports may
// be replaced wholesale via [RuleList.SetSupports]. RuleList performs no
// internal locking, so concurrent calls to SetSupports on the same
// instance must be synchronized by the caller.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type RuleList struct {
	v1beta1.ModelMeta `json:",inline"`

	// Rules is the ordered rule sequence, fixed at construction.
	Rules []Rule `json:"rules" jsonschema:"title=Rules"`
	// Supports holds one per-class support vector for each rule,
	// indexed [rule][class].
	Supports [][]float64 `json:"supports" jsonschema:"title=Supports"`
}

// New creates a [RuleList] from raw model data. The rules and supports
// containers are aliased rather than copied, so later mutation through
// the caller's references is visible to the new instance. The type
// discriminator is forced to [v1beta1.TypeRule] regardless of the value
// in meta. No shape validation is performed; only
// [RuleList.SetSupports] enforces the supports/rules invariant.
func New(meta v1beta1.ModelMeta, rules []Rule, supports [][]float64) *RuleList {
	meta.Type = v1beta1.TypeRule

	return &RuleList{
		ModelMeta: meta,
		Rules:     rules,
		Supports:  supports,
	}
}

// SetSupports replaces the support statistics wholesale. The input must
// contain exactly one entry per rule; otherwise SetSupports returns an
// error wrapping [ErrShapeMismatch] and leaves the current supports
// unmodified. It returns the same instance to allow chaining.
func (rl *RuleList) SetSupports(supports [][]float64) (*RuleList, error) {
	if len(supports) != len(rl.Rules) {
		return rl, fmt.Errorf("%w: got length %d, but %d is expected",
			ErrShapeMismatch, len(supports), len(rl.Rules))
	}

	rl.Supports = supports

	return rl, nil
}

func (rl *RuleList) String() string {
	return fmt.Sprintf("%s: %d rules on %s", rl.Name, len(rl.Rules), rl.Dataset)
}

// JSONSchemaExtend adds the type discriminator constraint to the schema.
func (rl RuleList) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithTypes(jss, ValidTypes)
}
