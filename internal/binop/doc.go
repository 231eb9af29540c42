// Package binop reads, derives and writes single-method binary operator
// trait implementations.
//
// An implementation of the form
//
//	impl<G> Op<B> for A where W {
//	    type Output = C;
//
//	    fn op(self, rhs: B) -> Self::Output { ... }
//	}
//
// is parsed into an Impl. Derivations build new Impl values from an existing
// one: the commuted form (B op A), reference forms that clone an operand
// before delegating, and owned forms that borrow an operand before
// delegating. Expand applies a set of Flags recursively and returns every
// resulting implementation.
//
// The Output declaration is never rewritten. An Output type that mentions
// Self resolves differently in a commuted or dereferenced implementation,
// so callers should declare it in terms of types from the outer scope.
package binop
