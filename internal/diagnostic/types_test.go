package diagnostic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gotest.tools/v3/golden"

	"binop-generator/internal/binop"
	"binop-generator/internal/token"
)

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(CodeNoop, "nothing to expand", "a.rs", token.Pos{Offset: 10, Line: 2, Col: 1})

	var other Diagnostics
	other.AddError(CodeGrammar, "expected `for`, found `Dog`", "b.rs", token.Pos{Offset: 14, Line: 1, Col: 15})
	other.AddInfo("", "expanded 4 items", "", token.Pos{})

	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	require.Error(t, d.Error())
	assert.Equal(t, "b.rs:1:15: error[E-GRAMMAR]: expected `for`, found `Dog`", d.Error().Error())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, "expanded 4 items", all[0].String())
	assert.Equal(t, "a.rs:2:1: warning[W-NOOP]: nothing to expand", all[1].String())
}

func TestFromError(t *testing.T) {
	_, lexErr := token.Lex("lib.rs", "impl X for Y { \"open }")
	_, parseErr := binop.ParseString("lib.rs", "impl Mul<Cat> Dog {}")
	_, flagErr := binop.ParseFlagsString("comute")

	tests := []struct {
		name string
		err  error
		code string
		pos  string
		sugg []string
	}{
		{"lex", lexErr, CodeLex, "1:16", nil},
		{"grammar", parseErr, CodeGrammar, "1:15", nil},
		{"wrapped grammar", errors.Wrap(parseErr, "item at 1:1"), CodeGrammar, "1:15", nil},
		{"option", flagErr, CodeOption, "1:1", []string{"commute"}},
		{"internal", &binop.InvariantError{Op: "Commute", Invariant: "method is missing"}, CodeInternal, "-", nil},
		{"other", fmt.Errorf("disk full"), CodeInternal, "-", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)

			d := FromError("lib.rs", tt.err)
			assert.Equal(t, DiagnosticError, d.Severity)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.pos, d.Pos.String())
			assert.Equal(t, tt.sugg, d.Suggestions)
			assert.Equal(t, "lib.rs", d.File)
		})
	}
}

func TestDiagnostics_Golden(t *testing.T) {
	_, parseErr := binop.ParseString("ops.rs", "impl Mul<Cat> for Dog { type Output = Fish; fn mul(&self, rhs: Cat) -> Fish { x } }")
	_, flagErr := binop.ParseFlagsString("refs_clone, derefz")

	var d Diagnostics
	d.AddErr("ops.rs", multierr.Combine(
		errors.Wrap(parseErr, "item at 1:1"),
		errors.Wrap(flagErr, "item at 9:1"),
	))
	d.AddWarning(CodeNoop, "`#[binop]` without options expands to the item itself", "ops.rs", token.Pos{Offset: 200, Line: 20, Col: 1})

	var out strings.Builder
	for _, diag := range d.All() {
		fmt.Fprintln(&out, diag.String())
	}

	golden.Assert(t, out.String(), "diagnostics.golden")
}
