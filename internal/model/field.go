package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
)

// FieldDefinition is the fully parsed declaration of one managed field.
type FieldDefinition struct {
	// Name is the field's public name, taken from the block label.
	Name string

	// Doc is the field's optional documentation string.
	Doc string

	// Type optionally constrains the field's values. cty.NilType when the
	// manifest declares no type.
	Type cty.Type

	// Default is the literal fallback value, or nil when the field has no
	// declared default. Defaults must be literals; no expressions.
	Default *cty.Value

	// ReadOnly omits the setter.
	ReadOnly bool

	// Listener names the change callback, taken from `listener = "name"`.
	Listener string

	// Notify is set by `listener = true` and requests the generic callback.
	Notify bool

	// AutoDirty opts this field into dirty tracking.
	AutoDirty bool
}

// fieldBodySchema is the HCL schema for the body of a `field` block.
var fieldBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "doc"},
		{Name: "default"},
		{Name: "read_only"},
		{Name: "listener"},
		{Name: "auto_dirty"},
	},
}

// parseFields decodes all `field` blocks of a class body in declaration
// order. Order is preserved deliberately: the storage layout of the built
// class follows it.
func parseFields(blocks hcl.Blocks) ([]*FieldDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	fields := make([]*FieldDefinition, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))

	for _, block := range blocks {
		fieldName := block.Labels[0]
		if _, dup := seen[fieldName]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate field definition",
				Detail:   fmt.Sprintf("A field named '%s' has already been defined.", fieldName),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[fieldName] = struct{}{}

		def, fieldDiags := parseFieldBody(fieldName, block)
		diags = append(diags, fieldDiags...)
		if def != nil {
			fields = append(fields, def)
		}
	}
	return fields, diags
}

func parseFieldBody(name string, block *hcl.Block) (*FieldDefinition, hcl.Diagnostics) {
	content, diags := block.Body.Content(fieldBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	def := &FieldDefinition{Name: name, Type: cty.NilType}

	if attr, ok := content.Attributes["type"]; ok {
		ty, typeDiags := typeExprToCty(attr.Expr)
		diags = append(diags, typeDiags...)
		def.Type = ty
	}
	if attr, ok := content.Attributes["doc"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Doc)...)
	}
	if attr, ok := content.Attributes["read_only"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.ReadOnly)...)
	}
	if attr, ok := content.Attributes["auto_dirty"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.AutoDirty)...)
	}

	if attr, ok := content.Attributes["default"]; ok {
		// A nil eval context: defaults must be literal values.
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			def.Default = &val
		}
	}

	if attr, ok := content.Attributes["listener"]; ok {
		listenerDiags := parseListener(def, attr)
		diags = append(diags, listenerDiags...)
	}

	if def.ReadOnly && (def.Listener != "" || def.Notify) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Read-only field with listener",
			Detail:   fmt.Sprintf("Field '%s' is read-only; it has no writes to observe.", name),
			Subject:  &block.DefRange,
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return def, diags
}

// parseListener accepts either a callback name or the literal `true`, which
// requests the generic callback name.
func parseListener(def *FieldDefinition, attr *hcl.Attribute) hcl.Diagnostics {
	var diags hcl.Diagnostics

	val, valDiags := attr.Expr.Value(nil)
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return diags
	}

	switch {
	case val.Type() == cty.String:
		def.Listener = val.AsString()
	case val.Type() == cty.Bool:
		def.Notify = val.True()
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid listener",
			Detail:   "The 'listener' attribute must be a callback name or the literal true.",
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	return diags
}
