package inline

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/listing"
	"github.com/invopop/jsonschema"
)

// Output is what inline mode writes with the json flag.
type Output struct {
	// Path is the path that produced the result.
	Path     string             `json:"path"`
	Category string             `json:"category,omitempty"`
	Content  string             `json:"content,omitempty"`
	Rows     []listing.Row      `json:"rows,omitempty"`
	Playback *dispatch.Playback `json:"playback,omitempty"`
}

func asJson(output *Output) ([]byte, error) {
	return json.Marshal(output)
}

// Schema describes Output as a JSON schema.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "row", "playback", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&Output{})
}
