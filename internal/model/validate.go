package model

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

// Lint checks a raw résumé document against the embedded resume.schema.json
// and returns one message per violation. A nil slice means the document is
// clean. Findings are advisory: the layout projector tolerates any shape
// Decode accepts.
func Lint(raw []byte) ([]string, error) {
	schemaLoader := gojsonschema.NewBytesLoader(resumeSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs, nil
}
