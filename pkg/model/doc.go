// Package model loads serialized model documents and narrows them to
// their concrete variants.
//
// A model document is a YAML (or JSON) file carrying one member of the
// model family, discriminated by its top-level `type` field. The loader
// validates documents against the variant's JSON schema before decoding.
package model
