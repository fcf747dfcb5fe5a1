package interchange

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/courtdata/stats-tracker/internal/common"
)

//go:embed schema.json
var schemaJSON string

var exportSchema = jsonschema.MustCompileString("export.schema.json", schemaJSON)

// Validate checks a raw interchange document against the schema before any
// row reaches the importer.
func Validate(raw []byte) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return common.NewAppError("INVALID_EXPORT", fmt.Sprintf("invalid json: %v", err), common.ErrValidation)
	}
	if err := exportSchema.Validate(v); err != nil {
		return common.NewAppError("INVALID_EXPORT", fmt.Sprintf("export schema: %v", err), common.ErrValidation)
	}
	return nil
}
