package binop

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

const implTemplate = `{{range .Attrs}}{{$.Indent}}{{.}}
{{end}}{{.Indent}}impl{{params .Generics}} {{.Trait}}<{{.RHS}}> for {{.LHS}}{{.Open}}
{{.Indent}}    type {{.Output.Ident}} = {{.Output.Type}};

{{range .Method.Attrs}}{{$.Indent}}    {{.}}
{{end}}{{.Indent}}    fn {{.Method.Name}}({{.Method.Receiver}}, {{.Method.Arg}}: {{.Method.ArgType}}) -> {{.Method.Ret}} {{.Body}}
{{.Indent}}}`

var implTmpl = template.Must(template.New("impl").Funcs(template.FuncMap{
	"params": func(g Generics) string {
		if len(g.Params) == 0 {
			return ""
		}

		return "<" + g.Params.String() + ">"
	},
}).Parse(implTemplate))

// implView is the template data: an impl laid out at column len(Indent).
// Text taken from the source keeps its own line breaks and indentation.
type implView struct {
	*Impl
	Indent string
}

func (v implView) Open() string {
	if !v.Generics.HasWhere {
		return " {"
	}

	return "\n" + v.Indent + "where" + v.Generics.Where.Source() + "\n" + v.Indent + "{"
}

func (v implView) Body() string {
	body := v.Method.Body.String()
	if !v.Method.Synthesized || v.Indent == "" {
		return body
	}

	return strings.ReplaceAll(body, "\n", "\n"+v.Indent)
}

// Write renders b as Rust source.
func (b *Impl) Write(w io.Writer) error {
	return b.WriteIndent(w, "")
}

// WriteIndent renders b with every generated line prefixed by indent, for
// an item nested in a module or function body.
func (b *Impl) WriteIndent(w io.Writer, indent string) error {
	if msg := b.check(); msg != "" {
		return &InvariantError{Op: "Write", Invariant: msg}
	}

	return implTmpl.Execute(w, implView{Impl: b, Indent: indent})
}

func (b *Impl) String() string {
	return b.indented("")
}

func (b *Impl) indented(indent string) string {
	var sb strings.Builder
	if err := b.WriteIndent(&sb, indent); err != nil {
		return fmt.Sprintf("<invalid impl: %v>", err)
	}

	return sb.String()
}
