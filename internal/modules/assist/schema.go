// README: Strict JSON-schema validation of classifier output.
package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// intentSchema is the single point of defense against malformed or
// hallucinated classifier output: closed action enum, declared optional
// fields only, additionalProperties off.
var intentSchema = func() gojsonschema.JSONLoader {
	enum := make([]string, len(Actions))
	for i, a := range Actions {
		enum[i] = string(a)
	}
	return gojsonschema.NewGoLoader(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"action":        map[string]interface{}{"type": "string", "enum": enum},
			"service":       map[string]interface{}{"type": "string"},
			"date_range":    map[string]interface{}{"type": "string"},
			"inactive_days": map[string]interface{}{"type": "integer"},
		},
		"required":             []string{"action"},
		"additionalProperties": false,
	})
}()

// ValidateIntent checks raw JSON against the intent schema and decodes it.
// Returns ErrSchemaViolation (with field detail) on any mismatch; the raw
// value must already be syntactically valid JSON.
func ValidateIntent(raw []byte) (*Intent, error) {
	result, err := gojsonschema.Validate(intentSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return &intent, nil
}
