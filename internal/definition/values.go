package definition

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseValueFlag parses a single -a/--values K=V flag argument.
func ParseValueFlag(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid -a value %q, expected KEY=VALUE", kv)
	}
	return key, value, nil
}

// LoadValuesFile reads KEY=VALUE pairs, one per line, from a -f/--values-file
// argument. Blank lines and lines starting with '#' are ignored.
func LoadValuesFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("definition: open values file %s: %w", path, err)
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := ParseValueFlag(line)
		if err != nil {
			return nil, fmt.Errorf("definition: %s: %w", path, err)
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("definition: read values file %s: %w", path, err)
	}
	return values, nil
}

// MergeValues overlays each values file then each -a flag, in the order
// given, onto a fresh map, later entries winning over earlier ones.
func MergeValues(fileValues []map[string]string, flagValues map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range fileValues {
		for k, v := range m {
			merged[k] = v
		}
	}
	for k, v := range flagValues {
		merged[k] = v
	}
	return merged
}
