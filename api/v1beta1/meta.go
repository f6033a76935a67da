// Package v1beta1 contains the v1beta1 model types for modelkit.
package v1beta1

import "github.com/invopop/jsonschema"

// ModelType identifies one variant within the closed family of trainable
// model representations.
type ModelType string

// TypeRule is the discriminator for rule-based models. Other variants
// (tree-based, linear, and so on) are produced and consumed by external
// tooling and have no in-tree representation.
const TypeRule ModelType = "rule"

// ModelMeta contains the metadata common to all model variants.
type ModelMeta struct {
	// Name is the display name of the model.
	Name string `json:"name" jsonschema:"title=Name"`
	// Type discriminates the model variant.
	Type ModelType `json:"type" jsonschema:"title=Type"`
	// Dataset identifies the dataset the model was trained on.
	Dataset string `json:"dataset" jsonschema:"title=Dataset"`
	// NFeatures is the number of input features the model consumes.
	NFeatures int `json:"nFeatures" jsonschema:"title=Feature Count"`
	// NClasses is the number of output classes the model predicts.
	NClasses int `json:"nClasses" jsonschema:"title=Class Count"`
	// Target is the label of the prediction target. It is omitted from
	// serialized documents when empty.
	Target string `json:"target,omitempty" jsonschema:"title=Target"`
}

// GetName returns the model name.
func (mm ModelMeta) GetName() string {
	return mm.Name
}

// GetType returns the model type discriminator.
func (mm ModelMeta) GetType() ModelType {
	return mm.Type
}

// GetDataset returns the dataset identifier.
func (mm ModelMeta) GetDataset() string {
	return mm.Dataset
}

// GetNFeatures returns the feature count.
func (mm ModelMeta) GetNFeatures() int {
	return mm.NFeatures
}

// GetNClasses returns the class count.
func (mm ModelMeta) GetNClasses() int {
	return mm.NClasses
}

// GetTarget returns the target label, or an empty string if the model
// has no target.
func (mm ModelMeta) GetTarget() string {
	return mm.Target
}

// Model is the interface that all model variants implement.
type Model interface {
	GetName() string
	GetType() ModelType
	GetDataset() string
	GetNFeatures() int
	GetNClasses() int
	GetTarget() string
}

// IsRule reports whether m is a rule-based model. Callers use it to
// narrow a [Model] to the rule-specific capability set before accessing
// rule fields.
func IsRule(m Model) bool {
	return m.GetType() == TypeRule
}

// ExtendSchemaWithTypes adds type discriminator enum constraints to a
// JSON schema.
func ExtendSchemaWithTypes(jss *jsonschema.Schema, types []ModelType) {
	typeProp, ok := jss.Properties.Get("type")
	if !ok {
		panic("type property not found in schema")
	}

	for _, mt := range types {
		typeProp.OneOf = append(typeProp.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: string(mt),
			Title: "Type",
		})
	}

	_, _ = jss.Properties.Set("type", typeProp)
}
