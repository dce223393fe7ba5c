// Package compiler wires the front end's phases into the single
// pipeline entry point SPEC_FULL.md §6 names: lex, parse, generate
// constraints, solve, derive the Explicit tree, and elaborate away
// classes and instances. Grounded on the teacher's
// internal/pipeline/pipeline.go (Source/Config/Run shape), trimmed down
// since this front end has no evaluator stage to hand off to — Compile
// stops at a class-free, fully-typed ast.ExplicitProgram, the pinned
// external interface.
package compiler

import (
	"github.com/classc/classc/internal/ast"
	"github.com/classc/classc/internal/constraint"
	"github.com/classc/classc/internal/elaborate"
	"github.com/classc/classc/internal/errs"
	"github.com/classc/classc/internal/generate"
	"github.com/classc/classc/internal/lexer"
	"github.com/classc/classc/internal/parser"
	"github.com/classc/classc/internal/printer"
	"github.com/classc/classc/internal/solve"
)

// Source is one unit of input to Compile: source text plus the
// filename used for diagnostics (the teacher's pipeline.Source trims
// down the same way, minus the REPL snippet-numbering fields this front
// end has no REPL-specific evaluator state to key off of).
type Source struct {
	Code     string
	Filename string
}

// Solver abstracts the constraint solver Compile drives, the external
// contract spec.md §4.3/§6 pins down (constraint.Solver). Compile
// accepts one explicitly rather than always constructing solve.New()
// itself, so a caller can substitute an alternative solver
// implementation without forking the pipeline.
type Solver = constraint.Solver

// Compile runs the full pipeline over src: lexing and parsing into an
// Implicit program, constraint generation against the seeded built-in
// environment, solving, deriving the Explicit tree, and elaborating
// every class/instance into plain dictionary-passing code. The result
// is always class-free (ast.ExplicitProgram.IsClassFree()) on success.
func Compile(src Source) (*ast.ExplicitProgram, *errs.Report) {
	return CompileWith(src, solve.New())
}

// CompileWith is Compile parameterized over an explicit Solver, the
// seam a caller substituting a different constraint.Solver
// implementation uses instead of the package-level reference one.
func CompileWith(src Source, solver Solver) (*ast.ExplicitProgram, *errs.Report) {
	implicit, perr := Parse(src)
	if perr != nil {
		// Parser diagnostics carry their own PRS### codes (parser_error.go),
		// kept out of errs.Kind's declared GEN/ELB/SLV taxonomy since syntax
		// errors are not one of spec §7's typed error kinds; Report.Code is
		// a plain string type, so the parser's code passes through as-is.
		return nil, errs.New(errs.Kind(perr.Code), "parse", perr.At, perr.Message, nil)
	}

	root, env, report := generate.GenerateProgram(generate.BaseEnv(), implicit)
	if report != nil {
		return nil, report
	}

	solution, report := solver.Solve(root)
	if report != nil {
		return nil, report
	}

	explicit, report := solution.Derive(implicit)
	if report != nil {
		return nil, report
	}

	return elaborate.New(env).Elaborate(explicit)
}

// Parse lexes and parses src in isolation, the first phase of Compile
// exposed on its own for callers that only need the concrete syntax
// tree (e.g. a `check`-only CLI mode that reports syntax errors without
// running the rest of the pipeline).
func Parse(src Source) (*ast.ImplicitProgram, *parser.ParserError) {
	l := lexer.New(string(lexer.Normalize([]byte(src.Code))), src.Filename)
	prog, perrs := parser.ParseProgram(l)
	if len(perrs) > 0 {
		return nil, perrs[0]
	}
	return prog, nil
}

// Render compiles src and, on success, pretty-prints the resulting
// class-free Explicit program back to concrete syntax (internal/printer),
// the convenience pairing a `classc check -print`-style CLI command
// wants without re-deriving the pipeline itself.
func Render(src Source) (string, *errs.Report) {
	prog, report := Compile(src)
	if report != nil {
		return "", report
	}
	return printer.Print(prog), nil
}
