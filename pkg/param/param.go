// Package param builds query strings from enumerated, optional parameters.
//
// Endpoints declare the parameters they recognize up front, together with how
// each one is serialized: Raw parameters are interpolated as plain strings,
// JSON parameters are serialized with encoding/json first. A parameter whose
// value is absent contributes nothing to the query string, so the server never
// sees an explicit-but-empty filter.
package param

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind selects the serialization rule for one parameter.
type Kind int

const (
	// Raw parameters are interpolated using their plain string form.
	Raw Kind = iota
	// JSON parameters are serialized with encoding/json before
	// interpolation. No additional escaping of the JSON text is performed.
	JSON
)

// ErrUnknownParam is returned when a value is supplied for a parameter the
// encoder does not recognize.
var ErrUnknownParam = fmt.Errorf("unrecognized query parameter")

// Encoder holds the recognized parameter set for one endpoint.
type Encoder struct {
	kinds map[string]Kind
}

// Values maps parameter names to their values for one call.
// A nil value is treated the same as an absent key.
type Values map[string]any

// NewEncoder returns an Encoder recognizing exactly the given parameters.
func NewEncoder(kinds map[string]Kind) *Encoder {
	return &Encoder{kinds: kinds}
}

// Encode builds the canonical query string for values, joining name=value
// pairs with "&" in lexical name order. Absent and nil values are omitted
// entirely. The result carries no leading "?".
func (e *Encoder) Encode(values Values) (string, error) {
	names := make([]string, 0, len(values))
	for name, value := range values {
		if _, ok := e.kinds[name]; !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
		if value == nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		encoded, err := e.encodeValue(e.kinds[name], values[name])
		if err != nil {
			return "", fmt.Errorf("parameter %q: %w", name, err)
		}
		pairs = append(pairs, name+"="+encoded)
	}

	return strings.Join(pairs, "&"), nil
}

func (e *Encoder) encodeValue(kind Kind, value any) (string, error) {
	switch kind {
	case JSON:
		b, err := json.Marshal(value)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(value), nil
	}
}
