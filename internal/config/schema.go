package config

import "github.com/invopop/jsonschema"

// Schema describes the configuration file as JSON schema. Keys use the YAML names,
// which are the same in every supported format.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "mirrorpick configuration"
	schema.Description = "Schema for mirrorpick.yaml, mirrorpick.toml and mirrorpick.json."

	// Every field has a default
	schema.Required = nil
	return schema
}
