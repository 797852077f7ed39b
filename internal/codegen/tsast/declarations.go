package tsast

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"github.com/okra-platform/kubetypes/internal/codegen/writer"
)

// Declaration is a renderable member of a File or an Interface
type Declaration interface {
	Name() string
	Description() string

	render(w *writer.Writer)
	multiline() bool
}

// Interface is an `export interface` record declaration
type Interface struct {
	name        string
	description string
	fields      []*Field
}

// NewInterface creates an empty interface declaration
func NewInterface(name, description string) *Interface {
	return &Interface{name: name, description: description}
}

// Add appends a field. Fields render in the order they were added.
func (i *Interface) Add(field *Field) *Interface {
	i.fields = append(i.fields, field)
	return i
}

func (i *Interface) Name() string        { return i.name }
func (i *Interface) Description() string { return i.description }

// Fields returns the interface's fields in declaration order
func (i *Interface) Fields() []*Field {
	return append([]*Field(nil), i.fields...)
}

func (i *Interface) render(w *writer.Writer) {
	w.WriteDocComment(docLines(i.description))
	w.WriteBlock("export interface "+i.name+" {", "}", func() {
		members := make([]Declaration, len(i.fields))
		for n, f := range i.fields {
			members[n] = f
		}
		renderMembers(w, members)
	})
}

func (i *Interface) multiline() bool { return true }

// Field is a single property of an Interface
type Field struct {
	name        string
	description string
	typ         string
	optional    bool
}

// NewField creates a field. typ is a complete type expression.
func NewField(name, description, typ string, optional bool) *Field {
	return &Field{name: name, description: description, typ: typ, optional: optional}
}

func (f *Field) Name() string        { return f.name }
func (f *Field) Description() string { return f.description }
func (f *Field) Type() string        { return f.typ }
func (f *Field) Optional() bool      { return f.optional }

var identifier = regexp.MustCompile(`^[A-Za-z_]\w*$`)

func (f *Field) render(w *writer.Writer) {
	name := f.name
	if !identifier.MatchString(name) {
		name = Literal(name)
	}

	marker := ""
	if f.optional {
		marker = "?"
	}

	w.WriteDocComment(docLines(f.description))
	w.WriteLinef("%s%s: %s", name, marker, f.typ)
}

func (f *Field) multiline() bool { return f.description != "" }

// Union is an `export type` alias over one or more alternatives
type Union struct {
	name        string
	description string
	types       []string
}

// NewUnion creates a union declaration
func NewUnion(name, description string, types []string) *Union {
	return &Union{name: name, description: description, types: append([]string(nil), types...)}
}

func (u *Union) Name() string        { return u.name }
func (u *Union) Description() string { return u.description }

// Types returns the union's alternatives
func (u *Union) Types() []string {
	return append([]string(nil), u.types...)
}

func (u *Union) render(w *writer.Writer) {
	w.WriteDocComment(docLines(u.description))
	w.WriteLinef("export type %s = %s", u.name, strings.Join(u.types, " | "))
}

func (u *Union) multiline() bool { return u.description != "" }

// renderMembers writes members in order, separating any member that spans several lines
// from its predecessor with a blank line.
func renderMembers(w *writer.Writer, members []Declaration) {
	for i, m := range members {
		if i > 0 && m.multiline() {
			w.BlankLine()
		}
		m.render(w)
	}
}

var requiredMarker = regexp.MustCompile(`\s+Required\.?\s*$`)

// docLines turns a description into comment lines, dropping the trailing "Required." marker
// the Kubernetes schema appends to mandatory fields.
func docLines(description string) []string {
	if description == "" {
		return nil
	}

	lines := strings.Split(requiredMarker.ReplaceAllString(description, ""), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// Literal renders s as a string literal type
func Literal(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
