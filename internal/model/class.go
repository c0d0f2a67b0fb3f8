// Package model holds the format-agnostic representation of class manifests
// and the logic for parsing them from HCL.
//
// A class manifest is the declarative counterpart of a programmatic builder
// session. Declaring fields in a manifest gives the same guarantees as the
// builder API — fixed storage layout, generated accessors, listener wiring —
// while shifting error detection to parse time: a malformed field block or an
// unknown listener is reported before any class exists, let alone an
// instance.
package model

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/propset/internal/ctxlog"
)

// ClassDefinition is the format-agnostic representation of one `class` block.
// Fields keep their declaration order; the storage layout of the built class
// follows it.
type ClassDefinition struct {
	Name        string
	Description string
	AutoDirty   bool
	SaveArgs    bool
	Fields      []*FieldDefinition
}

// Field returns the field definition with the given name, if declared.
func (d *ClassDefinition) Field(name string) (*FieldDefinition, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// NewClasses is the factory for class definitions from one parsed HCL file.
func NewClasses(ctx context.Context, hclFile *hcl.File, filePath string) ([]*ClassDefinition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing class definitions from file.", "file_path", filePath)

	classes, diags := parseClassFile(hclFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid class manifest %s: %w", filePath, diags)
	}

	logger.Debug("Class definitions parsed.", "file_path", filePath, "count", len(classes))
	return classes, nil
}

// classRootSchema expects one or more top-level `class` blocks.
type classRootSchema struct {
	Classes []*hclClass `hcl:"class,block"`
}

// hclClass is the raw decoding target for a single `class` block.
type hclClass struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// classBodySchema is the HCL schema for the body of a `class` block.
var classBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "auto_dirty"},
		{Name: "save_args"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "field", LabelNames: []string{"name"}},
	},
}

func parseClassFile(hclFile *hcl.File) ([]*ClassDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if hclFile == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, diags
	}

	var root classRootSchema
	diags = append(diags, gohcl.DecodeBody(hclFile.Body, nil, &root)...)
	if diags.HasErrors() {
		return nil, diags
	}

	classes := make([]*ClassDefinition, 0, len(root.Classes))
	seen := make(map[string]struct{}, len(root.Classes))
	for _, raw := range root.Classes {
		if _, dup := seen[raw.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate class definition",
				Detail:   fmt.Sprintf("A class named '%s' has already been defined.", raw.Name),
			})
			continue
		}
		seen[raw.Name] = struct{}{}

		def, classDiags := parseClassBody(raw.Name, raw.Body)
		diags = append(diags, classDiags...)
		if def != nil {
			classes = append(classes, def)
		}
	}
	return classes, diags
}

func parseClassBody(name string, body hcl.Body) (*ClassDefinition, hcl.Diagnostics) {
	content, diags := body.Content(classBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	def := &ClassDefinition{Name: name}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Description)...)
	}
	if attr, ok := content.Attributes["auto_dirty"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.AutoDirty)...)
	}
	if attr, ok := content.Attributes["save_args"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.SaveArgs)...)
	}

	fields, fieldDiags := parseFields(content.Blocks.OfType("field"))
	diags = append(diags, fieldDiags...)
	def.Fields = fields

	if diags.HasErrors() {
		return nil, diags
	}
	return def, diags
}
