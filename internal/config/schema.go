package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the .ftpilot file, keyed by YAML field names.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		FieldNameTag:              "yaml",
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
	}
	s := r.Reflect(&Config{})
	s.Title = "ftpilot"
	s.Description = "Configuration file for ftpilot (" + FileName + ")"
	return json.MarshalIndent(s, "", "  ")
}
