package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Decode parses a résumé document. Unknown keys are ignored.
func Decode(raw []byte) (*Resume, error) {
	var r Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	return &r, nil
}

// Load reads and decodes the résumé at path. The raw bytes are returned too so
// callers can lint or serve the original document.
func Load(path string) (*Resume, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read resume %s: %w", path, err)
	}
	r, err := Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	return r, raw, nil
}
