package hclstep

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
	"github.com/specialistvlad/stepconfig/internal/resolve"
	"github.com/specialistvlad/stepconfig/internal/unit"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// moduleVar is the reserved variable describing the step being loaded.
const moduleVar = "module"

// Loader is the HCL implementation of unit.Loader.
type Loader struct{}

// NewLoader creates a new HCL step loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements unit.Loader.
func (*Loader) Extensions() []string {
	return []string{".hcl"}
}

// Unit is an evaluated HCL step.
type Unit struct {
	id       *resolve.Identity
	bindings map[string]any
}

// Identity implements unit.Unit.
func (u *Unit) Identity() *resolve.Identity {
	return u.id
}

// Lookup implements unit.Unit.
func (u *Unit) Lookup(name string) (any, bool) {
	v, ok := u.bindings[name]
	return v, ok
}

// Load implements unit.Loader. It parses the file, registers the unit and
// evaluates every attribute once.
func (l *Loader) Load(ctx context.Context, id *resolve.Identity, reg *unit.Registry, _ *resolve.SearchPath) (unit.Unit, error) {
	logger := ctxlog.FromContext(ctx).With("loader", "hcl", "module", id.Module)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(id.Path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", bridgeerr.ErrLoad, id.Path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", bridgeerr.ErrLoad, id.Path, diags)
	}
	if _, reserved := attrs[moduleVar]; reserved {
		return nil, fmt.Errorf("%w: %s: attribute name %q is reserved", bridgeerr.ErrLoad, id.Path, moduleVar)
	}
	logger.Debug("HCL step parsed.", "attributes", len(attrs))

	u := &Unit{id: id, bindings: make(map[string]any, len(attrs))}
	reg.Register(id.Module, u)

	if err := l.evaluate(ctx, u, attrs); err != nil {
		reg.Remove(id.Module)
		return nil, fmt.Errorf("%w: %s: %w", bridgeerr.ErrLoad, id.Path, err)
	}
	logger.Debug("HCL step evaluated.")
	return u, nil
}

// evaluate walks attrs in source order, exposing each result to the
// attributes that follow.
func (l *Loader) evaluate(ctx context.Context, u *Unit, attrs hcl.Attributes) error {
	logger := ctxlog.FromContext(ctx)

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	slices.SortFunc(ordered, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			moduleVar: cty.ObjectVal(map[string]cty.Value{
				"name":    cty.StringVal(u.id.Module),
				"package": cty.StringVal(u.id.Package),
				"path":    cty.StringVal(u.id.Path),
			}),
		},
		Functions: functions(),
	}

	for _, attr := range ordered {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return diags
		}
		native, err := ctyToNative(val)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		evalCtx.Variables[attr.Name] = val
		u.bindings[attr.Name] = native
		logger.Debug("HCL attribute evaluated.", "attribute", attr.Name, "type", val.Type().FriendlyName())
	}
	return nil
}

// functions is the small function library available to step files.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"concat": stdlib.ConcatFunc,
		"format": stdlib.FormatFunc,
		"lower":  stdlib.LowerFunc,
		"merge":  stdlib.MergeFunc,
		"upper":  stdlib.UpperFunc,
	}
}
