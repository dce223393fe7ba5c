package main

import (
	"testing"

	"github.com/classc/classc/internal/compiler"
)

// TestCompleteFrontEndPipeline exercises the same lex/parse/generate/
// solve/derive/elaborate pipeline the check subcommand drives, the way
// the teacher's cmd/test_integration/main_test.go exercises its own
// pipeline end to end from within package main.
func TestCompleteFrontEndPipeline(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		expectError bool
		description string
	}{
		{
			name:        "simple let",
			source:      `let id = \x. x`,
			expectError: false,
			description: "unconstrained polymorphic identity",
		},
		{
			name:        "annotated let",
			source:      `let answer :: int = 42`,
			expectError: false,
			description: "a literal checked against an explicit annotation",
		},
		{
			name:        "class and instance",
			source: `
type Bool2 = MkTrue | MkFalse

class Eq a where {
  eq : a -> a -> bool
}

instance Eq Bool2 where {
  eq = \x. \y. true
}
`,
			expectError: false,
			description: "class and instance elaborate to class-free dictionary code",
		},
		{
			name:        "dangling arrow",
			source:      `let f :: int -> = \x. x`,
			expectError: true,
			description: "a malformed type annotation should fail to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, report := compiler.Compile(compiler.Source{Code: tt.source, Filename: "test.cls"})
			if tt.expectError {
				if report == nil {
					t.Fatalf("%s: expected an error, got none", tt.description)
				}
				return
			}
			if report != nil {
				t.Fatalf("%s: unexpected error: %v", tt.description, report)
			}
			if !prog.IsClassFree() {
				t.Fatalf("%s: elaborated program should be class-free", tt.description)
			}
		})
	}
}
