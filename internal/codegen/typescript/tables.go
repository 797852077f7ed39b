package typescript

// replacedTypes substitutes a type expression for references to a named definition.
// The definitions themselves are not emitted.
var replacedTypes = map[string]string{
	"IntOrString": "number | string",
}

// redefinedTypes gives the union alternatives for non-object definitions whose schema type
// does not describe them.
var redefinedTypes = map[string][]string{
	"JSON":                         {"any"},
	"JSONSchemaPropsOrArray":       {"JSONSchemaProps", "JSONSchemaProps[]"},
	"JSONSchemaPropsOrBool":        {"JSONSchemaProps", "boolean"},
	"JSONSchemaPropsOrStringArray": {"JSONSchemaProps", "string[]"},
}

func replacedType(name string) (string, bool) {
	t, ok := replacedTypes[name]
	return t, ok
}

func redefinedType(name string) ([]string, bool) {
	types, ok := redefinedTypes[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), types...), true
}
