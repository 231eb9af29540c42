// Package config loads the project configuration file.
//
// The file is named binop.yaml, binop.yml or binop.toml and is found by
// walking up from the working directory to the nearest repository root.
// Missing values are filled with defaults; command-line flags override
// what the file sets.
package config
