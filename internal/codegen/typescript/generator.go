package typescript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/okra-platform/kubetypes/internal/codegen/tsast"
	"github.com/okra-platform/kubetypes/internal/diagnostic"
	"github.com/okra-platform/kubetypes/internal/schema"
)

// Generator generates TypeScript declarations from a Kubernetes OpenAPI document
type Generator struct {
	logger zerolog.Logger
}

// NewGenerator creates a new TypeScript code generator
func NewGenerator() *Generator {
	return &Generator{logger: zerolog.Nop()}
}

// WithLogger sets the logger used for per-definition debug output
func (g *Generator) WithLogger(logger zerolog.Logger) *Generator {
	g.logger = logger.With().Str("component", "typescript").Logger()
	return g
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ModuleExtension
}

// Generate builds one declaration per representable definition. Findings that do not stop
// generation are added to diags, which may be nil. Any error aborts the whole run.
func (g *Generator) Generate(api *schema.API, diags *diagnostic.Diagnostics) (*tsast.Project, error) {
	if diags == nil {
		diags = &diagnostic.Diagnostics{}
	}

	s := &state{
		api:     api,
		project: tsast.NewProject(),
		diags:   diags,
		logger:  g.logger,
	}
	if err := s.generate(); err != nil {
		return nil, err
	}
	return s.project, nil
}

type state struct {
	api     *schema.API
	project *tsast.Project
	diags   *diagnostic.Diagnostics
	logger  zerolog.Logger
}

type locatedDefinition struct {
	Location
	qualified string
	def       *schema.Definition
}

func (s *state) generate() error {
	for _, d := range s.definitions() {
		file := s.project.File(d.Path)

		decl, err := s.declaration(file, d)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Path, err)
		}

		s.logger.Debug().
			Str("definition", d.qualified).
			Str("path", d.Path).
			Msg("generated declaration")
		file.Add(decl)
	}
	return nil
}

// definitions lists the definitions that get a declaration, ordered by qualified name
func (s *state) definitions() []locatedDefinition {
	names := make([]string, 0, len(s.api.Definitions))
	for name := range s.api.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]locatedDefinition, 0, len(names))
	for _, name := range names {
		def := s.api.Definitions[name]
		if def == nil {
			continue
		}

		loc, ok := NameToLocation(name)
		if !ok {
			s.diags.AddInfo(diagnostic.CodeExcludedDefinition, "name is outside the known namespaces", name, "")
			continue
		}
		if _, ok := replacedType(loc.Name); ok {
			s.diags.AddInfo(diagnostic.CodeReplacedDefinition, "references are replaced by a fixed type", name, loc.Path)
			continue
		}

		defs = append(defs, locatedDefinition{Location: loc, qualified: name, def: def})
	}
	return defs
}

func (s *state) declaration(file *tsast.File, d locatedDefinition) (tsast.Declaration, error) {
	if d.def.IsObject() {
		return s.interfaceDeclaration(file, d)
	}

	types, ok := redefinedType(d.Name)
	if !ok && d.def.Type != "" {
		t, err := scalarType(schema.ScalarType(d.def.Type))
		if err != nil {
			return nil, fmt.Errorf("%w for %s %q", ErrUnknownType, d.Name, d.def.Type)
		}
		types = []string{t}
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("%w for %s %q", ErrUnknownType, d.Name, d.def.Type)
	}

	return tsast.NewUnion(d.Name, d.def.Description, types), nil
}

func (s *state) interfaceDeclaration(file *tsast.File, d locatedDefinition) (*tsast.Interface, error) {
	iface := tsast.NewInterface(d.Name, d.def.Description)

	if len(d.def.Properties) == 0 {
		s.diags.AddWarning(diagnostic.CodeMissingProperties,
			fmt.Sprintf("interface %s has no properties", d.Name), d.qualified, file.Path())
		return iface, nil
	}

	for _, prop := range d.def.Properties {
		t, ok := literalAPIType(d.def.GVK, prop.Name)
		if !ok {
			var err error
			t, err = s.valueType(file, prop.Value)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", d.Name, prop.Name, err)
			}
		}

		iface.Add(tsast.NewField(prop.Name, prop.Description, t, !d.def.IsRequired(prop.Name)))
	}

	return iface, nil
}

// literalAPIType narrows apiVersion and kind to literal types when the definition
// represents exactly one resource.
func literalAPIType(gvk []schema.GroupVersionKind, propName string) (string, bool) {
	if len(gvk) != 1 {
		return "", false
	}

	switch propName {
	case "apiVersion":
		var parts []string
		for _, p := range []string{gvk[0].Group, gvk[0].Version} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return tsast.Literal(strings.Join(parts, "/")), true
	case "kind":
		return tsast.Literal(gvk[0].Kind), true
	default:
		return "", false
	}
}
