// Package printer renders a class-free ast.ExplicitProgram back to
// concrete syntax. Grounded on the teacher's ast.go per-node String()
// methods (Print here leans on the same style, and on ExplicitExpr's
// own String() implementations for every expression node) but adds the
// block-level and value-definition formatting the AST package itself
// does not provide, since those shapes are shared between the Implicit
// and Explicit program variants and carry no single canonical surface
// form of their own. Not a goal of round-trip correctness beyond
// readability (spec §6) — there is no guarantee Print's output reparses
// at all: elaborator-generated names such as `$dict_Eq_int` contain a
// `$`, which the lexer does not accept in an identifier.
package printer

import (
	"fmt"
	"strings"

	"github.com/classc/classc/internal/ast"
)

// Print renders every block of prog in order, separated by a blank
// line, the way a human-authored source file would lay out a sequence
// of top-level declarations.
func Print(prog *ast.ExplicitProgram) string {
	if prog == nil {
		return ""
	}
	parts := make([]string, len(prog.Blocks))
	for i, b := range prog.Blocks {
		parts[i] = printBlock(b)
	}
	return strings.Join(parts, "\n\n")
}

func printBlock(b ast.ExplicitBlock) string {
	switch b := b.(type) {
	case *ast.TypeDefinitions:
		return printTypeDefinitions(b)
	case *ast.ClassDefinition:
		return printClassDefinition(b)
	case *ast.ExplicitInstanceDefinitions:
		return printInstanceDefinitions(b)
	case *ast.ExplicitDefinition:
		return printDefinition(b)
	default:
		return fmt.Sprintf("<unprintable block %T>", b)
	}
}

func printTypeDefinitions(tds *ast.TypeDefinitions) string {
	defs := make([]string, len(tds.Defs))
	for i, d := range tds.Defs {
		defs[i] = printTypeDef(d)
	}
	return strings.Join(defs, "\nand ")
}

func printTypeDef(d *ast.TypeDef) string {
	head := d.Name.String()
	for _, p := range d.Params {
		head += " " + p.String()
	}
	if d.Record != nil {
		fields := make([]string, len(d.Record.Fields))
		for i, f := range d.Record.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Label, f.Type)
		}
		return fmt.Sprintf("type %s = { %s }", head, strings.Join(fields, ", "))
	}
	cons := make([]string, len(d.Algebraic.Constructors))
	for i, c := range d.Algebraic.Constructors {
		cons[i] = printDataConstructorDef(c)
	}
	return fmt.Sprintf("type %s = %s", head, strings.Join(cons, " | "))
}

func printDataConstructorDef(c *ast.DataConstructorDef) string {
	if len(c.Fields) == 0 {
		return c.Name.String()
	}
	fields := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = f.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(fields, ", "))
}

func printClassDefinition(cd *ast.ClassDefinition) string {
	var b strings.Builder
	b.WriteString("class ")
	if cd.IsConstructorClass {
		b.WriteString("higher ")
	}
	if len(cd.Supers) > 0 {
		supers := make([]string, len(cd.Supers))
		for i, s := range cd.Supers {
			supers[i] = s.String()
		}
		fmt.Fprintf(&b, "(%s) => ", strings.Join(supers, ", "))
	}
	fmt.Fprintf(&b, "%s %s where {\n", cd.Name, cd.Param)
	for _, m := range cd.Members {
		fmt.Fprintf(&b, "  %s : %s;\n", m.Label, m.Type)
	}
	b.WriteString("}")
	return b.String()
}

func printInstanceDefinitions(ids *ast.ExplicitInstanceDefinitions) string {
	insts := make([]string, len(ids.Instances))
	for i, inst := range ids.Instances {
		insts[i] = printInstance(inst)
	}
	return strings.Join(insts, "\nand ")
}

func printInstance(inst *ast.ExplicitInstance) string {
	var b strings.Builder
	b.WriteString("instance ")
	if len(inst.Context) > 0 {
		preds := make([]string, len(inst.Context))
		for i, p := range inst.Context {
			preds[i] = p.String()
		}
		fmt.Fprintf(&b, "(%s) => ", strings.Join(preds, ", "))
	}
	fmt.Fprintf(&b, "%s %s", inst.Class, inst.Head)
	for _, p := range inst.Params {
		fmt.Fprintf(&b, " %s", p)
	}
	b.WriteString(" where {\n")
	for _, m := range inst.Members {
		fmt.Fprintf(&b, "  %s = %s;\n", m.Label, m.Body)
	}
	b.WriteString("}")
	return b.String()
}

func printDefinition(d *ast.ExplicitDefinition) string {
	kw := "let"
	if d.Recursive {
		kw = "let rec"
	}
	defs := make([]string, len(d.Defs))
	for i, vd := range d.Defs {
		defs[i] = printValueDef(vd)
	}
	return kw + " " + strings.Join(defs, "\nand ")
}

func printValueDef(d *ast.ExplicitValueDef) string {
	return fmt.Sprintf("%s :: %s = %s", d.Name, d.Scheme(), d.Body)
}
