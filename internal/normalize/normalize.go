// Package normalize reconciles the backend's inconsistent payload shapes
// into one canonical form. The backend mixes snake_case, camelCase and a few
// exactly-cased keys in the same records, and wraps most payloads in a
// {code, message, data} envelope; callers should never have to know which
// convention a given endpoint happens to use.
package normalize

import (
	"strings"
)

// DefaultPreserved lists keys the backend requires with exact casing.
// The backend router is case-sensitive and expects Phone, not phone.
var DefaultPreserved = []string{"Phone"}

// Normalizer performs key-casing transforms with a configurable preserve-list.
type Normalizer struct {
	preserved map[string]struct{}
}

// Option customises a Normalizer.
type Option func(*Normalizer)

// WithPreserved adds keys exempt from case translation.
func WithPreserved(keys ...string) Option {
	return func(n *Normalizer) {
		for _, k := range keys {
			n.preserved[k] = struct{}{}
		}
	}
}

// New builds a Normalizer seeded with the default preserve-list.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{preserved: make(map[string]struct{})}
	for _, k := range DefaultPreserved {
		n.preserved[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ToCanonical recursively walks objects and arrays, adding the camelCase
// alias of every snake_case key and the snake_case alias of every camelCase
// key. Existing keys always win over derived aliases, so a real value coming
// in under one convention is never clobbered by an alias of the other.
// Preserve-list keys pass through verbatim with no alias. The transform is
// idempotent.
func (n *Normalizer) ToCanonical(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val)*2)
		for k, child := range val {
			out[k] = n.ToCanonical(child)
		}
		for k := range val {
			if _, ok := n.preserved[k]; ok {
				continue
			}
			if alias := snakeToCamel(k); alias != k {
				if _, exists := out[alias]; !exists {
					out[alias] = out[k]
				}
			}
			if alias := camelToSnake(k); alias != k {
				if _, exists := out[alias]; !exists {
					out[alias] = out[k]
				}
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = n.ToCanonical(child)
		}
		return out
	default:
		return v
	}
}

// ToAPIShape converts camelCase keys to snake_case for outbound bodies,
// leaving preserve-list keys untouched. Unlike ToCanonical this rewrites
// keys rather than aliasing them; when a rewrite would collide with a key
// already present in its target form, the existing entry wins.
func (n *Normalizer) ToAPIShape(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if n.keyUnchanged(k) {
				out[k] = n.ToAPIShape(child)
			}
		}
		for k, child := range val {
			if n.keyUnchanged(k) {
				continue
			}
			target := camelToSnake(k)
			if _, exists := out[target]; !exists {
				out[target] = n.ToAPIShape(child)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = n.ToAPIShape(child)
		}
		return out
	default:
		return v
	}
}

func (n *Normalizer) keyUnchanged(k string) bool {
	if _, ok := n.preserved[k]; ok {
		return true
	}
	return camelToSnake(k) == k
}

// UnwrapEnvelope extracts the payload from a {code, message, data} response
// envelope. Some list endpoints double-wrap the payload as data: [[...]];
// exactly one level is flattened in that case, and a single-wrapped array is
// never flattened further. Values without the envelope pass through.
func UnwrapEnvelope(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if _, hasCode := m["code"]; !hasCode {
		return v
	}
	data, hasData := m["data"]
	if !hasData {
		return v
	}
	if outer, ok := data.([]any); ok && len(outer) >= 1 {
		if inner, ok := outer[0].([]any); ok {
			return inner
		}
	}
	return data
}

// snakeToCamel uppercases each letter that follows an underscore, dropping
// the underscore: first_name -> firstName. Underscores not followed by a
// lowercase letter are kept.
func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// camelToSnake rewrites each uppercase letter as underscore plus lowercase:
// firstName -> first_name.
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(s[i] + ('a' - 'A'))
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
