// Package harness runs one query against every registered strategy and
// packages the side-by-side results for display and export.
package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResultSet is the ordered strategy-name → generation mapping produced by
// exactly one dispatch. Entries appear in registry registration order.
type ResultSet struct {
	order []string
	gens  map[string]string
}

func NewResultSet() *ResultSet {
	return &ResultSet{
		gens: make(map[string]string),
	}
}

// Add appends an entry, keeping insertion order. Re-adding a name replaces
// its generation without reordering.
func (rs *ResultSet) Add(name, generation string) {
	if rs == nil || name == "" {
		return
	}
	if rs.gens == nil {
		rs.gens = make(map[string]string)
	}
	if _, ok := rs.gens[name]; !ok {
		rs.order = append(rs.order, name)
	}
	rs.gens[name] = generation
}

// Names returns the strategy names in insertion order.
func (rs *ResultSet) Names() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Generation returns the generation text recorded for name.
func (rs *ResultSet) Generation(name string) (string, bool) {
	if rs == nil || rs.gens == nil {
		return "", false
	}
	g, ok := rs.gens[name]
	return g, ok
}

func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.order)
}

// MarshalJSON emits a JSON object whose keys keep insertion order.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	if rs == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range rs.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(rs.gens[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a ResultSet preserving the key order of the JSON
// object.
func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	if rs == nil {
		return fmt.Errorf("harness: unmarshal into nil ResultSet")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("harness: expected JSON object for ResultSet")
	}

	rs.order = nil
	rs.gens = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("harness: non-string key in ResultSet")
		}

		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("harness: result for %q: %w", key, err)
		}
		rs.Add(key, val)
	}

	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
