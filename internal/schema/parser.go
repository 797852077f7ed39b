package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/spec"
	"gopkg.in/yaml.v3"
)

const gvkExtension = "x-kubernetes-group-version-kind"

// Parse decodes a Swagger 2.0 document in either JSON or YAML encoding
func Parse(data []byte) (*API, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return ParseJSON(trimmed)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a YAML encoded Swagger 2.0 document
func ParseYAML(data []byte) (*API, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}

	return ParseJSON(encoded)
}

// ParseJSON decodes a JSON encoded Swagger 2.0 document
func ParseJSON(data []byte) (*API, error) {
	var doc spec.Swagger
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	api := &API{
		Definitions: make(map[string]*Definition, len(doc.Definitions)),
	}
	if doc.Info != nil {
		api.Info = Info{Title: doc.Info.Title, Version: doc.Info.Version}
	}

	for name, sch := range doc.Definitions {
		def, err := parseDefinition(name, sch)
		if err != nil {
			return nil, err
		}
		api.Definitions[name] = def
	}

	return api, nil
}

func parseDefinition(name string, sch spec.Schema) (*Definition, error) {
	def := &Definition{
		Description: sch.Description,
		Type:        typeTag(&sch),
		Required:    sch.Required,
	}

	if sch.Properties != nil {
		def.Properties = make([]Property, 0, len(sch.Properties))

		names := make([]string, 0, len(sch.Properties))
		for propName := range sch.Properties {
			names = append(names, propName)
		}
		sort.Strings(names)

		for _, propName := range names {
			prop := sch.Properties[propName]
			value, err := parseValue(&prop)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, propName, err)
			}
			def.Properties = append(def.Properties, Property{
				Name:        propName,
				Description: prop.Description,
				Value:       value,
			})
		}
	}

	gvk, err := parseGVK(sch.Extensions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	def.GVK = gvk

	return def, nil
}

func parseValue(sch *spec.Schema) (Value, error) {
	if ref := sch.Ref.String(); ref != "" {
		return Reference{Ref: ref}, nil
	}

	switch t := typeTag(sch); t {
	case string(ScalarString), string(ScalarNumber), string(ScalarInteger), string(ScalarBoolean):
		return Scalar{Type: ScalarType(t)}, nil
	case "array":
		if sch.Items == nil || sch.Items.Schema == nil {
			return nil, fmt.Errorf("%w: array without items", ErrUnsupportedValue)
		}
		items, err := parseValue(sch.Items.Schema)
		if err != nil {
			return nil, err
		}
		return Array{Items: items}, nil
	case "object":
		if sch.AdditionalProperties == nil || sch.AdditionalProperties.Schema == nil {
			return nil, fmt.Errorf("%w: object without additionalProperties", ErrUnsupportedValue)
		}
		values, err := parseValue(sch.AdditionalProperties.Schema)
		if err != nil {
			return nil, err
		}
		return Map{Values: values}, nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnsupportedValue, t)
	}
}

// typeTag returns the single type of a schema, or "" when it has none or several
func typeTag(sch *spec.Schema) string {
	if len(sch.Type) != 1 {
		return ""
	}
	return sch.Type[0]
}

func parseGVK(ext spec.Extensions) ([]GroupVersionKind, error) {
	for key, raw := range ext {
		if !strings.EqualFold(key, gvkExtension) {
			continue
		}

		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", gvkExtension, err)
		}

		var gvk []GroupVersionKind
		if err := json.Unmarshal(data, &gvk); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", gvkExtension, err)
		}
		return gvk, nil
	}

	return nil, nil
}
