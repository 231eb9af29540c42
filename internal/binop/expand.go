package binop

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"binop-generator/internal/rtype"
)

// Expander applies derivation flags to implementations.
type Expander struct {
	// Trace receives the dev_print dump. Nil means os.Stderr.
	Trace io.Writer
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Expand returns every leaf implementation for flags, starting from b.
// Flags are resolved in the order commute, refs_clone, derefs. Within a
// branch the source implementation comes before its derived forms. A leaf
// whose operand pairing was already produced is dropped, so derefs undoing
// a refs_clone branch yields nothing new.
func (e *Expander) Expand(flags Flags, b *Impl) (out []*Impl, err error) {
	defer recoverInvariant(&err)

	b.mustCheck("Expand")

	if flags.DevPrint {
		e.trace(flags, b)
	}

	return distinct(expand(flags, b)), nil
}

// ExpandString expands b and renders the leaves separated by blank lines.
func (e *Expander) ExpandString(flags Flags, b *Impl) (string, error) {
	leaves, err := e.Expand(flags, b)
	if err != nil {
		return "", err
	}

	return Render(leaves), nil
}

// Expand uses a zero Expander.
func Expand(flags Flags, b *Impl) ([]*Impl, error) {
	return (&Expander{}).Expand(flags, b)
}

// ExpandString uses a zero Expander.
func ExpandString(flags Flags, b *Impl) (string, error) {
	return (&Expander{}).ExpandString(flags, b)
}

// Read returns b unchanged. It is the identity counterpart of Expand.
func Read(b *Impl) *Impl {
	return b
}

func expand(flags Flags, b *Impl) []*Impl {
	switch {
	case flags.Commute:
		flags.Commute = false

		return expandWith(flags, b, commuteStep)
	case flags.RefsClone:
		flags.RefsClone = false

		return expandWith(flags, b, refsCloneStep)
	case flags.Derefs:
		flags.Derefs = false

		return expandWith(flags, b, derefsStep)
	default:
		return []*Impl{b}
	}
}

// Derivations applied by each flag, in output order.
var (
	commuteStep   = []Derivation{DeriveCommute}
	refsCloneStep = []Derivation{DeriveRefLHSClone, DeriveRefRHSClone, DeriveRefBothClone}
	derefsStep    = []Derivation{DeriveDerefLHS, DeriveDerefRHS, DeriveDerefBoth}
)

// expandWith expands b itself, then every form in step whose precondition
// holds.
func expandWith(flags Flags, b *Impl, step []Derivation) []*Impl {
	out := expand(flags, b)

	for _, d := range step {
		if derived, ok := b.Derive(d); ok {
			out = append(out, expand(flags, derived)...)
		}
	}

	return out
}

func distinct(leaves []*Impl) []*Impl {
	seen := make(map[string]bool, len(leaves))
	out := leaves[:0]

	for _, b := range leaves {
		key := pairing(b)
		if seen[key] {
			continue
		}

		seen[key] = true
		out = append(out, b)
	}

	return out
}

func pairing(b *Impl) string {
	return rtype.Key(b.LHS) + " | " + rtype.Key(b.RHS)
}

func (e *Expander) trace(flags Flags, b *Impl) {
	w := e.Trace
	if w == nil {
		w = os.Stderr
	}

	fmt.Fprintf(w, "binop(%s)\n", flags)
	fmt.Fprintf(w, "%s\n", b)
	dumper.Fdump(w, flags, b)
}

// Render joins rendered implementations with blank lines.
func Render(impls []*Impl) string {
	return RenderIndent(impls, "")
}

// RenderIndent is Render for items starting at column len(indent). The
// first line carries no indent, since it replaces text that already
// follows the indentation in the source.
func RenderIndent(impls []*Impl, indent string) string {
	parts := make([]string, len(impls))
	for i, b := range impls {
		parts[i] = b.indented(indent)
	}

	return strings.TrimPrefix(strings.Join(parts, "\n\n"), indent)
}
