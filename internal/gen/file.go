package gen

import "path/filepath"

// BannerLine marks output files as generated.
const BannerLine = "// @generated by binop-generator. DO NOT EDIT."

// GeneratedFile is a file produced by the generator.
type GeneratedFile struct {
	// Filename is the output path relative to the output directory
	// (e.g., "ops.expanded.rs").
	Filename string
	// Content is the Rust source.
	Content []byte
}

// NewFile builds a GeneratedFile, prepending the banner when header is set.
func NewFile(filename, content string, header bool) GeneratedFile {
	if header {
		content = Banner() + content
	}

	return GeneratedFile{Filename: filename, Content: []byte(content)}
}

// Banner returns the generated-code header, followed by a blank line.
func Banner() string {
	return BannerLine + "\n\n"
}

// OutputPath returns where an expanded copy of input goes: dir when set,
// otherwise the directory of input.
func OutputPath(input, dir, name string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}

	return filepath.Join(dir, name)
}
