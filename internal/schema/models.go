package schema

// API is the root of a decoded OpenAPI (Swagger 2.0) document
type API struct {
	Info        Info                   `json:"info"`
	Definitions map[string]*Definition `json:"definitions"`
}

// Info carries the descriptive document header. The generator never reads it except in
// error messages.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Definition is one named type in the document
type Definition struct {
	Description string             `json:"description"`
	Type        string             `json:"type,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Properties  []Property         `json:"properties,omitempty"`
	GVK         []GroupVersionKind `json:"x-kubernetes-group-version-kind,omitempty"`
}

// IsObject reports whether the definition describes a record
func (d *Definition) IsObject() bool {
	return d.Type == "object"
}

// IsRequired reports whether name is listed in the required set
func (d *Definition) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// GroupVersionKind identifies the API resource a definition represents
type GroupVersionKind struct {
	Group   string `json:"group"`
	Version string `json:"version"`
	Kind    string `json:"kind"`
}

// Property is a named field of an object definition
type Property struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       Value  `json:"-"`
}

// Value is the shape of a property. The set of implementations is closed: Reference,
// Scalar, Array and Map.
type Value interface {
	isValue()
}

// Reference points at another definition, e.g. "#/definitions/io.k8s.api.core.v1.Pod"
type Reference struct {
	Ref string
}

// ScalarType is the type tag of a Scalar
type ScalarType string

const (
	ScalarString  ScalarType = "string"
	ScalarNumber  ScalarType = "number"
	ScalarInteger ScalarType = "integer"
	ScalarBoolean ScalarType = "boolean"
)

// Scalar is a primitive value
type Scalar struct {
	Type ScalarType
}

// Array is a homogeneous sequence
type Array struct {
	Items Value
}

// Map is an object with string keys and homogeneous values
type Map struct {
	Values Value
}

func (Reference) isValue() {}
func (Scalar) isValue()    {}
func (Array) isValue()     {}
func (Map) isValue()       {}
