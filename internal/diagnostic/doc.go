// Package diagnostic provides structured errors, warnings and notes for the
// binop generator.
//
// Key capabilities:
//   - Located grammar and option errors with stable codes
//   - "Did you mean" suggestions for unknown options
//   - Classification of engine errors (FromError)
//   - Warnings for annotations that expand to nothing new
package diagnostic
