package markup

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"
	"strings"

	"github.com/goccy/go-yaml"
)

// Attr is a single attribute key/value pair.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an insertion-ordered string mapping of element attributes.
// The zero value and the nil pointer are both empty and ready to read;
// the nil pointer cannot be written.
type Attrs struct {
	list  []Attr
	index map[string]int
}

// NewAttrs returns Attrs holding the given pairs in order.
func NewAttrs(pairs ...Attr) *Attrs {
	a := &Attrs{}

	for _, p := range pairs {
		a.Set(p.Key, p.Value)
	}

	return a
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}

	return len(a.list)
}

// Get returns the value of key and whether it is present.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}

	i, ok := a.index[key]
	if !ok {
		return "", false
	}

	return a.list[i].Value, true
}

// Set assigns value to key. An existing key keeps its position.
func (a *Attrs) Set(key, value string) {
	if a.index == nil {
		a.index = make(map[string]int)
	}

	if i, ok := a.index[key]; ok {
		a.list[i].Value = value

		return
	}

	a.index[key] = len(a.list)
	a.list = append(a.list, Attr{Key: key, Value: value})
}

// Keys returns the attribute names in order.
func (a *Attrs) Keys() []string {
	keys := make([]string, 0, a.Len())
	for k := range a.All() {
		keys = append(keys, k)
	}

	return keys
}

// All returns an iterator over the attributes in order.
func (a *Attrs) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if a == nil {
			return
		}

		for _, p := range a.list {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Map returns the attributes as an unordered map.
func (a *Attrs) Map() map[string]string {
	return maps.Collect(a.All())
}

// Equal reports whether a and b hold the same pairs, ignoring order.
func (a *Attrs) Equal(b *Attrs) bool {
	return maps.Equal(a.Map(), b.Map())
}

// MarshalJSON encodes the attributes as a JSON object in order.
func (a *Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for key, val := range a.All() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(val)
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

// MarshalYAML encodes the attributes as a YAML mapping in order.
func (a *Attrs) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, a.Len())
	for k, v := range a.All() {
		ms = append(ms, yaml.MapItem{Key: k, Value: v})
	}

	return ms, nil
}

// ParseAttrs parses an attribute string such as ` id="x" hidden  n=1` in a
// single left-to-right pass.
//
// An attribute without '=' has an empty value. Quoted values run to the
// matching quote; unquoted values run to the next whitespace. Malformed
// input is never rejected: an unterminated quote takes the rest of s.
func ParseAttrs(s string) *Attrs {
	attrs := NewAttrs()

	i := 0
	skip := func() {
		for i < len(s) && isBlank(s[i]) {
			i++
		}
	}

	for {
		skip()

		if i >= len(s) {
			return attrs
		}

		start := i
		for i < len(s) && !isBlank(s[i]) && s[i] != '=' {
			i++
		}

		name := s[start:i]
		value := ""

		mark := i
		skip()

		if i < len(s) && s[i] == '=' {
			i++
			skip()
			value, i = attrValue(s, i)
		} else {
			i = mark
		}

		if name != "" {
			attrs.Set(name, strings.Trim(value, blanks))
		}
	}
}

// attrValue reads the value starting at s[i] and returns it with the index
// just past it.
func attrValue(s string, i int) (string, int) {
	if q := openQuote(s[i:]); q != "" {
		i += len(q)

		end := strings.Index(s[i:], q)
		if end < 0 {
			return s[i:], len(s)
		}

		return s[i : i+end], i + end + len(q)
	}

	start := i
	for i < len(s) && !isBlank(s[i]) {
		i++
	}

	return s[start:i], i
}

func isBlank(b byte) bool {
	return strings.IndexByte(blanks, b) >= 0
}
