// Package gen writes expanded Rust sources to disk.
//
// Files are written with fixed permissions, creating directories as needed.
// An optional banner line marks them as generated.
package gen
