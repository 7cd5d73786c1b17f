package schema

import (
	"fmt"
	"testing"

	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestConfiguratorAppliesDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfigurator()
	c.Declare(Option{Key: "path", Schema: &Schema{Type: String}})
	c.Declare(Option{Key: "branch", Optional: true, Default: "main", Schema: &Schema{Type: String}})

	record, err := c.Validate("git", map[string]any{"path": "."})
	require.NoError(t, err)
	require.Equal(t, ".", record.String("path"))
	require.Equal(t, "main", record.String("branch"))
}

func TestConfiguratorMissingMandatoryOption(t *testing.T) {
	t.Parallel()

	c := NewConfigurator()
	c.Declare(Option{Key: "path", Schema: &Schema{Type: String}})

	_, err := c.Validate("git", map[string]any{})
	require.Error(t, err)
	var missing *pwerrors.MissingOptionsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"path"}, missing.Keys)
}

func TestConfiguratorUnknownOption(t *testing.T) {
	t.Parallel()

	c := NewConfigurator()
	c.Declare(Option{Key: "path", Schema: &Schema{Type: String}})

	_, err := c.Validate("git", map[string]any{"path": ".", "bogus": 1})
	require.Error(t, err)
	var unknown *pwerrors.UnknownOptionsError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, []string{"bogus"}, unknown.Keys)
}

func TestConfiguratorRedactsSecrets(t *testing.T) {
	t.Parallel()

	c := NewConfigurator()
	c.Declare(Option{Key: "token", Secret: true, Schema: &Schema{Type: String}})

	record, err := c.Validate("http", map[string]any{"token": "supersecret"})
	require.NoError(t, err)

	lines := record.Redacted(c.DeclaredOrder())
	require.Len(t, lines, 1)
	require.NotContains(t, lines[0], "supersecret")
	require.Contains(t, lines[0], "token = ")
}

func TestConfiguratorCustomValidator(t *testing.T) {
	t.Parallel()

	c := NewConfigurator()
	c.Declare(Option{Key: "min", Schema: &Schema{Type: Integer}})
	c.Declare(Option{Key: "max", Schema: &Schema{Type: Integer}})
	c.AddValidator(func(values map[string]any) error {
		if values["min"].(int) > values["max"].(int) {
			return fmt.Errorf("min must not exceed max")
		}
		return nil
	})

	_, err := c.Validate("range", map[string]any{"min": 1, "max": 2})
	require.NoError(t, err)

	_, err = c.Validate("range", map[string]any{"min": 5, "max": 2})
	require.Error(t, err)
}

func TestConfiguratorEmptyDeclarationReturnsEmptyRecord(t *testing.T) {
	t.Parallel()

	c := NewConfigurator()
	record, err := c.Validate("noop", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "", record.String("anything"))
}
