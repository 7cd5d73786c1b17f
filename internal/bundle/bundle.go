// Package bundle implements the ordered source-id to value mapping that
// flows between pipeline stages.
package bundle

import (
	"encoding/json"
	"fmt"
)

// Bundle is an ordered mapping of source id to an arbitrary
// JSON-serializable value. Insertion order is preserved and is significant:
// it reflects the declared order of sources in the pipeline definition.
type Bundle struct {
	order  []string
	values map[string]any
}

// New returns an empty Bundle.
func New() Bundle {
	return Bundle{values: make(map[string]any)}
}

// Set stores value under key, appending key to the order if it is new.
func (b *Bundle) Set(key string, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[key]; !exists {
		b.order = append(b.order, key)
	}
	b.values[key] = value
}

// Delete removes key from the bundle, if present.
func (b *Bundle) Delete(key string) {
	if _, exists := b.values[key]; !exists {
		return
	}
	delete(b.values, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Get returns the value stored under key and whether it was present.
func (b Bundle) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key is present in the bundle.
func (b Bundle) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Keys returns the bundle's keys in insertion order.
func (b Bundle) Keys() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Len reports the number of entries in the bundle.
func (b Bundle) Len() int {
	return len(b.order)
}

// Reorder rebuilds the bundle's iteration order to match declaredOrder,
// dropping any key of b that is not in declaredOrder and ignoring declared
// keys missing from b (failed, optional sources). This implements the rule that after the
// sources stage the bundle's key order is the declared source order, not
// the order in which sources finished.
func (b Bundle) Reorder(declaredOrder []string) Bundle {
	out := New()
	for _, key := range declaredOrder {
		if value, ok := b.values[key]; ok {
			out.Set(key, value)
		}
	}
	return out
}

// Clone returns a deep copy of the bundle via a JSON round trip, so that a
// sink mutating its received copy cannot affect any other consumer's view.
func (b Bundle) Clone() (Bundle, error) {
	if b.Len() == 0 {
		return New(), nil
	}

	raw, err := json.Marshal(b.asOrderedMap())
	if err != nil {
		return Bundle{}, fmt.Errorf("bundle: marshal for clone: %w", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Bundle{}, fmt.Errorf("bundle: unmarshal for clone: %w", err)
	}

	out := New()
	for _, key := range b.order {
		out.Set(key, decoded[key])
	}
	return out, nil
}

// Map returns a plain map[string]any snapshot, for handing to code that
// doesn't care about order (template rendering, sink payloads).
func (b Bundle) Map() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

func (b Bundle) asOrderedMap() map[string]any {
	return b.Map()
}

// MarshalJSON renders the bundle as a JSON object. The object's keys come
// out sorted (encoding/json sorts map keys), not in insertion order; callers
// that need declared order for display should use Keys()+Get().
func (b Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Map())
}
