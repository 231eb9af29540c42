package source

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"binop-generator/internal/binop"
	"binop-generator/internal/common"
	"binop-generator/internal/config"
	"binop-generator/internal/diagnostic"
	"binop-generator/internal/token"
)

//go:generate go tool stringer -type=Entry -trimprefix=Entry -output=entry_string.go

// Entry selects what happens to an annotated item.
type Entry int

const (
	// EntryExpand replaces the item with every implementation its options derive.
	EntryExpand Entry = iota + 1
	// EntryRead replaces the item with its canonical rendering.
	EntryRead
)

// Options configures a Processor.
type Options struct {
	// ExpandAttrs and ReadAttrs name the trigger attributes. Empty means
	// the defaults from the config package.
	ExpandAttrs []string
	ReadAttrs   []string
	// Trace receives dev traces. Nil means os.Stderr.
	Trace io.Writer
	// ForceTrace turns dev_print on for every expanded item and traces
	// every read item.
	ForceTrace bool
	// ReadAll routes items carrying any trigger attribute, expand
	// attributes included, to the read entry point.
	ReadAll bool
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// Item describes one processed annotated item.
type Item struct {
	// Attr is the trigger attribute path as written.
	Attr  string
	Entry Entry
	Pos   token.Pos
	// Flags is zero for read items.
	Flags binop.Flags
	// Leaves is the number of implementations emitted for the item.
	Leaves int
}

// Result is the outcome of processing one file.
type Result struct {
	// Text is the rewritten source.
	Text  string
	Items []Item
	// Diagnostics holds warnings and one info per processed item. Errors
	// are returned separately.
	Diagnostics diagnostic.Diagnostics
}

// Changed reports whether the file held any annotated item.
func (r Result) Changed() bool {
	return len(r.Items) > 0
}

// Processor rewrites the annotated items of Rust source files.
type Processor struct {
	opts     Options
	expand   map[string]bool
	read     map[string]bool
	expander *binop.Expander
	log      *slog.Logger
}

// New returns a Processor for opts.
func New(opts Options) *Processor {
	if common.IsEmpty(opts.ExpandAttrs) {
		opts.ExpandAttrs = []string{config.DefaultExpandAttr}
	}

	if common.IsEmpty(opts.ReadAttrs) {
		opts.ReadAttrs = []string{config.DefaultReadAttr}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Processor{
		opts:     opts,
		expand:   nameSet(opts.ExpandAttrs),
		read:     nameSet(opts.ReadAttrs),
		expander: &binop.Expander{Trace: opts.Trace},
		log:      log,
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return set
}

// ProcessFile reads and processes the file at path.
func (p *Processor) ProcessFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "reading source")
	}

	return p.Process(path, string(data))
}

// Process rewrites every annotated item of src. name is used in errors and
// diagnostics. Errors of independent items are combined; when any item
// fails the Result carries no text.
func (p *Processor) Process(name, src string) (Result, error) {
	toks, err := token.Lex(name, src)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}

	var (
		res  Result
		errs error
		out  strings.Builder
		last int
	)

	for _, st := range p.find(toks, nil) {
		text, item, err := p.apply(name, indentAt(src, st.start), st, &res.Diagnostics)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "#[%s] at %s:%s", st.attr, name, st.pos))

			continue
		}

		out.WriteString(src[last:st.start])
		out.WriteString(text)
		last = st.end

		res.Items = append(res.Items, item)
	}

	if errs != nil {
		p.log.Debug("file failed", "file", name, "errors", len(multierr.Errors(errs)))

		return Result{Diagnostics: res.Diagnostics}, errs
	}

	out.WriteString(src[last:])
	res.Text = out.String()

	p.log.Debug("file processed", "file", name, "items", len(res.Items))

	return res, nil
}

func (p *Processor) apply(file, indent string, st site, diags *diagnostic.Diagnostics) (string, Item, error) {
	item := Item{Attr: st.attr, Entry: st.entry, Pos: st.pos}
	if st.err != nil {
		return "", item, st.err
	}

	b, err := binop.Parse(st.item)
	if err != nil {
		return "", item, err
	}

	if st.entry == EntryRead {
		if p.opts.ForceTrace {
			p.traceRead(st.attr, b)
		}

		item.Leaves = 1
		diags.AddInfo(diagnostic.CodeExpanded, fmt.Sprintf("`#[%s]` read the item", st.attr), file, st.pos)

		return binop.RenderIndent([]*binop.Impl{binop.Read(b)}, indent), item, nil
	}

	flags, err := parseArgs(st)
	if err != nil {
		return "", item, err
	}

	if p.opts.ForceTrace {
		flags.DevPrint = true
	}

	if !flags.Any() {
		diags.AddWarning(diagnostic.CodeNoop,
			fmt.Sprintf("`#[%s]` without options expands to the item itself", st.attr), file, st.pos)
	}

	leaves, err := p.expander.Expand(flags, b)
	if err != nil {
		return "", item, err
	}

	item.Flags = flags
	item.Leaves = len(leaves)

	diags.AddInfo(diagnostic.CodeExpanded,
		fmt.Sprintf("`#[%s]` expanded into %d implementation(s)", st.attr, len(leaves)), file, st.pos)

	p.log.Debug("item expanded",
		"file", file, "pos", st.pos.String(), "attr", st.attr, "flags", flags.String(), "leaves", len(leaves))

	return binop.RenderIndent(leaves, indent), item, nil
}

// indentAt returns the whitespace that precedes offset on its line, or ""
// when other text comes first.
func indentAt(src string, offset int) string {
	line := src[strings.LastIndexByte(src[:offset], '\n')+1 : offset]
	if strings.TrimLeft(line, " \t") != "" {
		return ""
	}

	return line
}

// parseArgs reads the option list following the attribute path: nothing,
// or a single parenthesized list.
func parseArgs(st site) (binop.Flags, error) {
	switch {
	case len(st.args) == 0:
		return binop.Flags{}, nil
	case len(st.args) == 1 && st.args[0].IsGroup(token.Paren):
		return binop.ParseFlags(st.args[0].Inner, st.args[0].ClosePos)
	default:
		return binop.Flags{}, &binop.ParseError{
			Pos: st.args[0].Pos,
			Msg: fmt.Sprintf("expected an option list in parentheses, found %s", st.args[0].Describe()),
		}
	}
}

func (p *Processor) traceRead(attr string, b *binop.Impl) {
	w := p.opts.Trace
	if w == nil {
		w = os.Stderr
	}

	fmt.Fprintf(w, "BEGIN %s item\n%s\nEND\n", attr, b)
}
