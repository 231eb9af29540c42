package source

import (
	"strings"

	"binop-generator/internal/binop"
	"binop-generator/internal/common"
	"binop-generator/internal/token"
)

// site is an annotated item found in a file.
type site struct {
	// attr is the trigger attribute path as written, e.g. "xops::binop".
	attr  string
	entry Entry
	pos   token.Pos
	// args holds the tokens after the attribute path.
	args token.Stream
	// item is the item with the trigger attribute removed.
	item token.Stream
	// start and end are the byte offsets of the whole item, attributes
	// included.
	start, end int
	err        error
}

// find collects the annotated items of s and of every brace group nested
// in s that is not itself part of an annotated item.
func (p *Processor) find(s token.Stream, out []site) []site {
	for i := 0; i < len(s); {
		j := attrRun(s, i)
		if j == i {
			if s[i].IsGroup(token.Brace) {
				out = p.find(s[i].Inner, out)
			}

			i++

			continue
		}

		end := itemEnd(s, j)
		if st, ok := p.site(s[i:end], j-i); ok {
			out = append(out, st)
			i = end

			continue
		}

		i = j
	}

	return out
}

// attrRun returns the index just past the outer attributes and doc
// comments starting at i.
func attrRun(s token.Stream, i int) int {
	for i < len(s) {
		t := s[i]

		switch {
		case t.Kind == token.DocComment && !strings.HasPrefix(t.Text, "//!") && !strings.HasPrefix(t.Text, "/*!"):
			i++
		case t.IsPunct('#') && i+1 < len(s) && s[i+1].IsGroup(token.Bracket):
			i += 2
		default:
			return i
		}
	}

	return i
}

// itemEnd returns the index just past the item starting at j: the first
// brace group or `;` outside angle brackets.
func itemEnd(s token.Stream, j int) int {
	depth := 0

	for k := j; k < len(s); k++ {
		t := s[k]

		switch {
		case t.IsPunct('<'):
			depth++
		case t.IsPunct('>') && !(k > j && s[k-1].IsPunct('-') && s[k-1].Joint):
			if depth > 0 {
				depth--
			}
		case depth == 0 && (t.IsGroup(token.Brace) || t.IsPunct(';')):
			return k + 1
		}
	}

	return len(s)
}

// site builds the annotated item from item, whose first n tokens are
// attributes. It reports false when no attribute triggers an entry point.
func (p *Processor) site(item token.Stream, n int) (site, bool) {
	st := site{start: item[0].Pos.Offset, end: item[len(item)-1].End}
	trigger := -1

	for k := 0; k < n; k++ {
		if !item[k].IsPunct('#') {
			continue
		}

		path, args := attrPath(item[k+1].Inner)
		entry := p.entryFor(path)

		if entry != 0 {
			if trigger >= 0 {
				st.err = &binop.ParseError{
					Pos: item[k].Pos,
					Msg: "`#[" + path + "]` conflicts with `#[" + st.attr + "]`; an item takes one expansion attribute",
				}

				return st, true
			}

			trigger = k
			st.attr, st.entry, st.pos, st.args = path, entry, item[k].Pos, args
		}

		k++
	}

	if trigger < 0 {
		return site{}, false
	}

	st.item = make(token.Stream, 0, len(item)-2)
	st.item = append(st.item, item[:trigger]...)
	st.item = append(st.item, item[trigger+2:]...)

	return st, true
}

// attrPath splits the inside of `#[...]` into its path and the rest.
func attrPath(inner token.Stream) (string, token.Stream) {
	var b strings.Builder

	k := 0
	for ; k < len(inner); k++ {
		t := inner[k]
		if t.Kind != token.Ident && !t.IsPunct(':') {
			break
		}

		b.WriteString(t.Text)
	}

	return b.String(), inner[k:]
}

func (p *Processor) entryFor(path string) Entry {
	name := common.LastSegment(path)

	switch {
	case name == "":
		return 0
	case p.expand[name] && p.opts.ReadAll:
		return EntryRead
	case p.expand[name]:
		return EntryExpand
	case p.read[name]:
		return EntryRead
	default:
		return 0
	}
}
