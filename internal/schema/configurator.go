package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	pwerrors "github.com/pipeweave/pipeweave/pkg/errors"
)

// SlugPattern matches the identifier shape required of configuration keys
// and component ids throughout the pipeline definition.
var SlugPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Option is a single declared configuration option.
type Option struct {
	Key      string
	Default  any
	Optional bool
	Schema   *Schema
	Secret   bool
}

// item is a validated configuration value paired with its secrecy flag, the
// Go analogue of Flowbber's configitem namedtuple.
type item struct {
	Value    any
	IsSecret bool
}

// Record is the frozen, validated configuration handed to a component's
// kind-specific verb (Collect/Accumulate/Distribute).
type Record struct {
	values map[string]item
}

// Get returns the value stored under key, or nil if undeclared.
func (r Record) Get(key string) any {
	return r.values[key].Value
}

// String returns the value under key as a string, or "" if absent or not a string.
func (r Record) String(key string) string {
	v, _ := r.values[key].Value.(string)
	return v
}

// Int returns the value under key as an int, or 0 if absent or not numeric.
func (r Record) Int(key string) int {
	switch v := r.values[key].Value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Bool returns the value under key as a bool, or false if absent.
func (r Record) Bool(key string) bool {
	v, _ := r.values[key].Value.(bool)
	return v
}

// Redacted renders the record as "key = value" lines with secret values
// masked, in declaration order, for logging.
func (r Record) Redacted(order []string) []string {
	lines := make([]string, 0, len(order))
	for _, key := range order {
		entry, ok := r.values[key]
		if !ok {
			continue
		}
		if entry.IsSecret {
			lines = append(lines, fmt.Sprintf("%s = %s", key, strings.Repeat("*", 8)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s = %v", key, entry.Value))
	}
	return lines
}

// Validator is a custom cross-field validation hook run after per-key
// schema validation and default application.
type Validator func(values map[string]any) error

// Configurator declares and validates a component's configuration options,
// the Go port of Flowbber's Configurator class.
type Configurator struct {
	order      []string
	declared   map[string]Option
	validators []Validator
}

// NewConfigurator creates an empty Configurator.
func NewConfigurator() *Configurator {
	return &Configurator{declared: make(map[string]Option)}
}

// Declare registers a configuration option. It panics on a malformed key,
// matching Flowbber's fail-fast ValueError from an invalid add_option call,
// since this is a plugin author's programming error, not user input.
func (c *Configurator) Declare(opt Option) {
	if opt.Key == "" {
		panic("schema: missing configuration key")
	}
	if !SlugPattern.MatchString(opt.Key) {
		panic(fmt.Sprintf("schema: invalid key %q, must match %s", opt.Key, SlugPattern.String()))
	}
	if _, exists := c.declared[opt.Key]; !exists {
		c.order = append(c.order, opt.Key)
	}
	c.declared[opt.Key] = opt
}

// AddValidator registers a cross-field validation hook.
func (c *Configurator) AddValidator(v Validator) {
	c.validators = append(c.validators, v)
}

// Validate checks userConf against the declared options, fills in defaults,
// runs custom validators, and returns the frozen Record.
func (c *Configurator) Validate(componentID string, userConf map[string]any) (Record, error) {
	var missing []string
	for key, opt := range c.declared {
		if opt.Optional {
			continue
		}
		if _, present := userConf[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Record{}, pwerrors.NewMissingOptionsError(componentID, missing)
	}

	var unknown []string
	for key := range userConf {
		if _, ok := c.declared[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Record{}, pwerrors.NewUnknownOptionsError(componentID, unknown)
	}

	values := make(map[string]any, len(c.declared))
	for _, key := range c.order {
		opt := c.declared[key]
		raw, present := userConf[key]
		if !present {
			values[key] = opt.Default
			continue
		}
		validated, err := opt.Schema.Validate(raw)
		if err != nil {
			return Record{}, pwerrors.NewInvalidConfigOptionError(componentID, key, fmt.Sprintf("%v", raw), err.Error())
		}
		values[key] = validated
	}

	for _, validator := range c.validators {
		if err := validator(values); err != nil {
			return Record{}, pwerrors.NewInvalidConfigOptionError(componentID, "<custom>", "", err.Error())
		}
	}

	items := make(map[string]item, len(values))
	for key, value := range values {
		items[key] = item{Value: value, IsSecret: c.declared[key].Secret}
	}
	return Record{values: items}, nil
}

// DeclaredOrder returns declared option keys in declaration order, used for
// stable, redacted logging of the resulting configuration.
func (c *Configurator) DeclaredOrder() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
