// Package token turns Rust source text into token trees.
//
// The lexer is lossless: every token keeps the whitespace and ordinary
// comments that preceded it (its Lead), so printing a parsed stream
// reproduces the original text. Delimited regions become Group tokens that
// own their inner stream, which lets the parser treat method bodies and
// argument lists as opaque subtrees.
//
// Punctuation is emitted one character at a time. A Punct whose Joint flag
// is set is immediately followed by another punctuation character, so
// multi-character operators such as "->" and "::" are recognized by the
// parser from pairs rather than by the lexer.
package token
