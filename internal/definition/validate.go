package definition

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	slugPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks the static shape of a Document: required fields, slug
// patterns on type/id, and schedule field ranges. Per-component config
// shape is validated later, per plugin, by schema.Configurator.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("definition: document is nil")
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return fmt.Errorf("definition: %w", err)
	}

	kinds := map[string][]ComponentDescriptor{
		"source":     doc.Sources,
		"aggregator": doc.Aggregators,
		"sink":       doc.Sinks,
	}
	for kind, group := range kinds {
		seen := make(map[string]string)
		for _, c := range group {
			for key := range c.Config {
				if !slugPattern.MatchString(key) {
					return fmt.Errorf("definition: component %q has invalid config key %q", c.ID, key)
				}
			}
			if existing, ok := seen[c.ID]; ok {
				return fmt.Errorf("definition: duplicate %s id %q (also used by %s)", kind, c.ID, existing)
			}
			seen[c.ID] = c.Type
		}
	}

	return nil
}
