package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaValidatesStringRegex(t *testing.T) {
	t.Parallel()

	s := &Schema{Type: String, Regex: SlugPattern}
	_, err := s.Validate("not a slug")
	require.Error(t, err)

	value, err := s.Validate("valid_slug")
	require.NoError(t, err)
	require.Equal(t, "valid_slug", value)
}

func TestSchemaValidatesRange(t *testing.T) {
	t.Parallel()

	s := &Schema{Type: Integer, Min: Min(1), Max: Max(10)}
	_, err := s.Validate(0)
	require.Error(t, err)

	value, err := s.Validate(5)
	require.NoError(t, err)
	require.Equal(t, 5, value)
}

func TestSchemaNullable(t *testing.T) {
	t.Parallel()

	s := &Schema{Type: Integer, Nullable: true}
	value, err := s.Validate(nil)
	require.NoError(t, err)
	require.Nil(t, value)

	s2 := &Schema{Type: Integer}
	_, err = s2.Validate(nil)
	require.Error(t, err)
}

func TestSchemaListElements(t *testing.T) {
	t.Parallel()

	s := &Schema{Type: List, Elem: &Schema{Type: String}}
	value, err := s.Validate([]any{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b"}, value)

	_, err = s.Validate([]any{"a", 5})
	require.Error(t, err)
}

func TestSchemaDictKeysAndValuesRules(t *testing.T) {
	t.Parallel()

	s := &Schema{
		Type:        Dict,
		KeysRules:   &Schema{Type: String, Regex: SlugPattern},
		ValuesRules: &Schema{Type: Integer},
	}

	value, err := s.Validate(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": 1, "b": 2}, value)

	_, err = s.Validate(map[string]any{"a": "not-an-int"})
	require.Error(t, err)

	_, err = s.Validate(map[string]any{"not a slug": 1})
	require.Error(t, err)
}

func TestSchemaEmptyFlagRejectsEmptyCollections(t *testing.T) {
	t.Parallel()

	disallow := AllowEmpty(false)

	listSchema := &Schema{Type: List, Empty: disallow}
	_, err := listSchema.Validate([]any{})
	require.Error(t, err)

	dictSchema := &Schema{Type: Dict, Empty: disallow}
	_, err = dictSchema.Validate(map[string]any{})
	require.Error(t, err)

	stringSchema := &Schema{Type: String, Empty: disallow}
	_, err = stringSchema.Validate("")
	require.Error(t, err)

	allow := AllowEmpty(true)
	listSchema.Empty = allow
	value, err := listSchema.Validate([]any{})
	require.NoError(t, err)
	require.Equal(t, []any{}, value)
}

func TestSchemaAllowedValues(t *testing.T) {
	t.Parallel()

	s := &Schema{Type: String, Allowed: []any{"json", "yaml"}}
	_, err := s.Validate("toml")
	require.Error(t, err)

	value, err := s.Validate("yaml")
	require.NoError(t, err)
	require.Equal(t, "yaml", value)
}

func TestCoerceDurationSeconds(t *testing.T) {
	t.Parallel()

	v, err := CoerceDurationSeconds("1h")
	require.NoError(t, err)
	require.Equal(t, 3600, v)

	v, err = CoerceDurationSeconds("45")
	require.NoError(t, err)
	require.Equal(t, 45, v)

	_, err = CoerceDurationSeconds("not-a-duration")
	require.Error(t, err)
}
