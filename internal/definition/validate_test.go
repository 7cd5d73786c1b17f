package definition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAllowsSameIDAcrossKinds(t *testing.T) {
	doc := &Document{
		Sources: []ComponentDescriptor{{Type: "env", ID: "x"}},
		Sinks:   []ComponentDescriptor{{Type: "archive", ID: "x"}},
	}

	require.NoError(t, Validate(doc))
}

func TestValidateRejectsDuplicateIDWithinKind(t *testing.T) {
	doc := &Document{
		Sources: []ComponentDescriptor{
			{Type: "env", ID: "x"},
			{Type: "timestamp", ID: "x"},
		},
		Sinks: []ComponentDescriptor{{Type: "archive", ID: "a"}},
	}

	err := Validate(doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate source id")
}
