// Package tsast holds the in-memory set of TypeScript files produced by the generator and
// renders them to text.
//
// Rendering is a pure function of a file's content: declarations and imports are sorted on
// the way out, so the order in which they were added never shows in the output.
package tsast

import (
	"path"
	"sort"
	"strings"

	"github.com/okra-platform/kubetypes/internal/codegen/writer"
)

// Project is the set of files being generated, keyed by module path
type Project struct {
	files map[string]*File
}

// NewProject creates an empty project
func NewProject() *Project {
	return &Project{files: make(map[string]*File)}
}

// File returns the file for a module path, creating it on first use
func (p *Project) File(modulePath string) *File {
	f, ok := p.files[modulePath]
	if !ok {
		f = newFile(modulePath)
		p.files[modulePath] = f
	}
	return f
}

// Lookup returns an existing file
func (p *Project) Lookup(modulePath string) (*File, bool) {
	f, ok := p.files[modulePath]
	return f, ok
}

// Files returns all files ordered by module path
func (p *Project) Files() []*File {
	files := make([]*File, 0, len(p.files))
	for _, f := range p.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].path < files[j].path
	})
	return files
}

// Len returns the number of files
func (p *Project) Len() int {
	return len(p.files)
}

// File is one generated module: its imports and top-level declarations
type File struct {
	path    string
	imports map[string]map[string]struct{}
	members []Declaration
}

func newFile(modulePath string) *File {
	return &File{
		path:    modulePath,
		imports: make(map[string]map[string]struct{}),
	}
}

// Path returns the module path, e.g. "core/v1.ts"
func (f *File) Path() string {
	return f.path
}

// Add appends a top-level declaration
func (f *File) Add(d Declaration) *File {
	f.members = append(f.members, d)
	return f
}

// Import records that name is used from modulePath. Imports of the file itself are ignored.
func (f *File) Import(modulePath, name string) *File {
	if modulePath == f.path {
		return f
	}

	names, ok := f.imports[modulePath]
	if !ok {
		names = make(map[string]struct{})
		f.imports[modulePath] = names
	}
	names[name] = struct{}{}
	return f
}

// Imports returns a copy of the import table with names sorted
func (f *File) Imports() map[string][]string {
	out := make(map[string][]string, len(f.imports))
	for modulePath, names := range f.imports {
		out[modulePath] = sortedNames(names)
	}
	return out
}

// Declarations returns the top-level declarations in insertion order
func (f *File) Declarations() []Declaration {
	return append([]Declaration(nil), f.members...)
}

// Render returns the file's source lines
func (f *File) Render() []string {
	w := writer.NewWriter("  ")

	modules := make([]string, 0, len(f.imports))
	for modulePath := range f.imports {
		modules = append(modules, modulePath)
	}
	sort.Slice(modules, func(i, j int) bool {
		ri, rj := Relative(f.path, modules[i]), Relative(f.path, modules[j])
		if ri != rj {
			return ri < rj
		}
		return modules[i] < modules[j]
	})

	for _, modulePath := range modules {
		names := strings.Join(sortedNames(f.imports[modulePath]), ", ")
		w.WriteLinef("import {%s} from %s", names, Literal(Relative(f.path, modulePath)))
	}
	if len(modules) > 0 {
		w.Newline()
	}

	members := f.Declarations()
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Name() < members[j].Name()
	})
	renderMembers(w, members)

	return w.Lines()
}

// Text returns the rendered file contents, newline terminated. An empty file renders as
// an empty string.
func (f *File) Text() string {
	return strings.Join(append(f.Render(), ""), "\n")
}

// Relative returns the import specifier that reaches module to from module from
func Relative(from, to string) string {
	fromDir := path.Dir(from)
	if fromDir == path.Dir(to) {
		return "./" + path.Base(to)
	}
	if fromDir == "." {
		return "./" + to
	}

	depth := strings.Count(fromDir, "/") + 1
	return strings.Repeat("../", depth) + to
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
