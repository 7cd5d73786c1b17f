package main

import (
	"github.com/spf13/cobra"

	"github.com/pipeweave/pipeweave/internal/definition"
)

// valuesFlags holds the -a/--values and -f/--values-file flags shared by
// every command that loads a definition document.
type valuesFlags struct {
	inline []string
	files  []string
}

func (f *valuesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.inline, "values", "a", nil, "set a substitution value as KEY=VALUE (repeatable)")
	cmd.Flags().StringArrayVarP(&f.files, "values-file", "f", nil, "load substitution values from a KEY=VALUE file (repeatable)")
}

// resolve merges every values file (in order) and every -a flag (in order)
// into the map Load expects, later entries winning.
func (f *valuesFlags) resolve() (map[string]string, error) {
	var fileValues []map[string]string
	for _, path := range f.files {
		values, err := definition.LoadValuesFile(path)
		if err != nil {
			return nil, err
		}
		fileValues = append(fileValues, values)
	}

	flagValues := make(map[string]string, len(f.inline))
	for _, kv := range f.inline {
		key, value, err := definition.ParseValueFlag(kv)
		if err != nil {
			return nil, err
		}
		flagValues[key] = value
	}

	return definition.MergeValues(fileValues, flagValues), nil
}
