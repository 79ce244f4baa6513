package extraction

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// responseSchema constrains what a provider may hand back before any
// coercion happens. Providers that wrap the JSON in prose still pass:
// the parser isolates the object first, then validates it here.
const responseSchema = `{
  "type": "object",
  "properties": {
    "calendar_call_date": {"type": ["string", "null"]},
    "trial_start_date": {"type": ["string", "null"]},
    "trial_end_date": {"type": ["string", "null"]},
    "document_type": {"type": "string"}
  },
  "required": ["calendar_call_date", "trial_start_date", "trial_end_date", "document_type"]
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("extraction.json", strings.NewReader(responseSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("extraction.json")
}
