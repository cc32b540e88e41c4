// Package plugin holds the registry types for host functions exposed to
// workflow scripts: Function (one named callable) and Package (an ordered
// group of functions). Both are plain data constructors; no duplicate-id or
// body-presence validation happens here.
package plugin

import (
	v1 "github.com/Walkmana-25/Saphillon-Core/api/v1"
	"github.com/Walkmana-25/Saphillon-Core/runtime"
)

// Function is a named host-implemented callable exposed to workflow scripts.
// The body is an opaque capability; the registry stores metadata plus the
// body and never inspects its internals. Immutable once constructed.
type Function struct {
	ID          string
	Name        string
	Description string
	Body        runtime.HostFunc
}

// NewFunction creates a Function from explicit metadata and a body.
func NewFunction(id, name, description string, body runtime.HostFunc) *Function {
	return &Function{ID: id, Name: name, Description: description, Body: body}
}

// FunctionFromDescriptor projects the metadata of a wire-level descriptor
// onto a Function. Descriptors never carry executable code; the body is
// resolved by the host out of band, typically keyed by FunctionID.
func FunctionFromDescriptor(d *v1.PluginFunction, body runtime.HostFunc) *Function {
	return &Function{
		ID:          d.FunctionID,
		Name:        d.FunctionName,
		Description: d.Description,
		Body:        body,
	}
}

// Package is a named, ordered group of Functions. A workflow holds packages
// by reference, so one Package may be shared across workflows.
type Package struct {
	ID        string
	Name      string
	Functions []*Function
}

// NewPackage creates a Package from explicit metadata and a function list.
func NewPackage(id, name string, functions []*Function) *Package {
	return &Package{ID: id, Name: name, Functions: functions}
}

// PackageFromDescriptor projects the metadata of a wire-level descriptor onto
// a Package, attaching the separately resolved function list.
func PackageFromDescriptor(d *v1.PluginPackage, functions []*Function) *Package {
	return &Package{ID: d.PackageID, Name: d.PackageName, Functions: functions}
}

// Bindings materializes the package's functions as sandbox bindings, in
// declaration order.
func (p *Package) Bindings() []runtime.Binding {
	out := make([]runtime.Binding, 0, len(p.Functions))
	for _, f := range p.Functions {
		out = append(out, runtime.Binding{Name: f.Name, Fn: f.Body})
	}
	return out
}

// Descriptor projects the package back into its wire form. Only the fields
// this module interprets are filled in.
func (p *Package) Descriptor() *v1.PluginPackage {
	d := &v1.PluginPackage{
		PackageID:   p.ID,
		PackageName: p.Name,
		Functions:   make([]v1.PluginFunction, 0, len(p.Functions)),
	}
	for _, f := range p.Functions {
		d.Functions = append(d.Functions, v1.PluginFunction{
			FunctionID:   f.ID,
			FunctionName: f.Name,
			Description:  f.Description,
		})
	}
	return d
}
