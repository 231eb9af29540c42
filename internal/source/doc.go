// Package source runs the binop engine over whole Rust source files.
//
// A Processor lexes a file, finds every item carrying one of the configured
// trigger attributes (at the top level and inside nested brace groups such
// as inline modules), and replaces each item with the engine's output:
//
//   - expand attributes (`#[binop(commute, refs_clone)]` by default) parse
//     their option list and emit every derived implementation;
//   - read attributes (`#[read_binop_impl]`) re-emit the parsed item in
//     canonical form.
//
// Attribute names match on the last path segment, so `#[xops::binop]`
// triggers like `#[binop]`. Everything outside the annotated items is copied
// byte for byte. Items fail independently; a file with any failing item
// produces no output.
package source
