// Package diagnostic collects and formats the three kinds of errors the Lox
// pipeline can raise (syntax, resolution, runtime), per spec §7. Every stage
// appends to a shared Bag rather than aborting the process directly, so the
// CLI decides what counts as a fatal run and the REPL can keep going after a
// runtime error.
package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind groups diagnostics by the pipeline stage that raised them.
type Kind int

const (
	Syntax Kind = iota
	Resolve
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Resolve:
		return "ResolveError"
	case Runtime:
		return "RuntimeError"
	default:
		return "Error"
	}
}

// Diagnostic is one reported problem. Code names the specific error for
// lexer, parser and resolver diagnostics (e.g. "UnterminatedString",
// "InheritFromSelf"); every runtime error carries the Code "RuntimeError".
// Lexeme is set only for parse errors reported against a specific token.
type Diagnostic struct {
	Kind    Kind
	Code    string
	Line    int
	Lexeme  string
	Message string
}

func (d Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic per spec §7:
//
//	[line N] Error at 'LEXEME': MESSAGE   (syntax errors with a token)
//	[line N] <kind>: MESSAGE              (everything else)
func (d Diagnostic) Format(useColor bool) string {
	tag := fmt.Sprintf("[line %d]", d.Line)

	var label, rest string
	if d.Kind == Syntax && d.Lexeme != "" {
		label = fmt.Sprintf("Error at '%s'", d.Lexeme)
	} else {
		label = d.Kind.String()
	}
	rest = d.Message

	if !useColor {
		return fmt.Sprintf("%s %s: %s", tag, label, rest)
	}

	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)
	return fmt.Sprintf("%s %s: %s", bold.Sprint(tag), red.Sprint(label), rest)
}

// Bag accumulates diagnostics across a single lex/parse/resolve/evaluate run.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) Empty() bool { return len(b.items) == 0 }

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// Merge appends other's diagnostics onto b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Report writes every diagnostic, one per line, to w (formatted per Format).
func (b *Bag) Report(w io.Writer, useColor bool) {
	for _, d := range b.items {
		fmt.Fprintln(w, d.Format(useColor))
	}
}

// JSON renders the bag as a JSON array, building it incrementally with
// sjson (one Set call per diagnostic) rather than a single json.Marshal, so
// each diagnostic is independently addressable by index while it's built.
func (b *Bag) JSON() (string, error) {
	doc := "[]"
	var err error
	for i, d := range b.items {
		prefix := fmt.Sprintf("%d.", i)
		doc, err = sjson.Set(doc, prefix+"kind", d.Kind.String())
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"code", d.Code)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"line", d.Line)
		if err != nil {
			return "", err
		}
		if d.Lexeme != "" {
			doc, err = sjson.Set(doc, prefix+"lexeme", d.Lexeme)
			if err != nil {
				return "", err
			}
		}
		doc, err = sjson.Set(doc, prefix+"message", d.Message)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// ProjectFields takes a JSON array (as produced by JSON) and a list of field
// names, and returns a new JSON array containing only those fields per
// element, using gjson path queries to pick them out.
func ProjectFields(jsonArray string, fields []string) (string, error) {
	if len(fields) == 0 {
		return jsonArray, nil
	}

	results := gjson.Parse(jsonArray).Array()
	doc := "[]"
	var err error
	for i, item := range results {
		prefix := fmt.Sprintf("%d.", i)
		for _, field := range fields {
			v := item.Get(field)
			if !v.Exists() {
				continue
			}
			doc, err = sjson.Set(doc, prefix+field, v.Value())
			if err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}
