package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the pipeline definition document at path, applying
// variable substitution before validation. JSON and YAML are both
// accepted; the format is detected from the file extension, falling back
// to a JSON-then-YAML parse attempt for extensionless files.
func Load(path string, values map[string]string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}

	substituted, err := Substitute(string(raw), path, values)
	if err != nil {
		return nil, fmt.Errorf("definition: substitute variables in %s: %w", path, err)
	}

	doc, err := parse([]byte(substituted), path)
	if err != nil {
		return nil, fmt.Errorf("definition: parse %s: %w", path, err)
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func parse(data []byte, path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var doc Document
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
		return &doc, nil
	default:
		if err := json.Unmarshal(data, &doc); err == nil {
			return &doc, nil
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unrecognized definition format (not valid JSON or YAML)")
		}
		return &doc, nil
	}
}
