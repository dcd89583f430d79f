package expr

import (
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxIndex bounds sequence indexes so that a write cannot grow a slice
// without limit.
const maxIndex = 1 << 24

// Path is an ordered list of keys addressing a nested value. Keys are
// strings or numbers.
type Path []any

// String renders p in dotted form, for example a.b[0].
func (p Path) String() string {
	var sb strings.Builder

	for i, key := range p {
		if s, ok := key.(string); ok && isName(s) {
			if i > 0 {
				sb.WriteByte('.')
			}

			sb.WriteString(s)

			continue
		}

		if s, ok := key.(string); ok {
			sb.WriteString("[" + strconv.Quote(s) + "]")
		} else {
			sb.WriteString("[" + ToString(key) + "]")
		}
	}

	return sb.String()
}

func isName(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}

	return true
}

// Read resolves path against target. The first key is looked up in scope
// before target; every later key indexes the value found so far. Missing
// keys read as [Undefined].
func Read(target any, path Path, scope any) (any, error) {
	if len(path) == 0 {
		return target, nil
	}

	cur, found, _ := lookup(scope, keyString(path[0]))
	if !found {
		var ok bool

		cur, found, ok = lookup(target, path[0])
		if !ok {
			return nil, traversal(target, scope, path, 0)
		}

		if !found {
			cur = Undefined
		}
	}

	for i := 1; i < len(path); i++ {
		v, found, ok := lookup(cur, path[i])
		if !ok {
			return nil, traversal(target, scope, path, i)
		}

		if !found {
			v = Undefined
		}

		cur = v
	}

	return cur, nil
}

// Write assigns value at path within target, creating missing intermediate
// containers along the way: a []any when the key that follows is an
// integer index, a map[string]any otherwise. Slices grow as needed, so the
// returned target may differ from the one passed in.
func Write(target any, path Path, value any) (any, error) {
	if len(path) == 0 {
		return nil, ErrPathTraversal.With(slog.String("reason", "empty path"))
	}

	if target == nil {
		target = container(path[0])
	}

	w := writer{target: target, path: path}

	return w.assign(target, 0, value)
}

type writer struct {
	target any
	path   Path
}

func (w writer) assign(cur any, i int, value any) (any, error) {
	key := w.path[i]

	if i < len(w.path)-1 {
		next, found, ok := lookup(cur, key)
		if !ok {
			return nil, traversal(w.target, nil, w.path, i)
		}

		if !found || IsUndefined(next) {
			next = container(w.path[i+1])
		}

		child, err := w.assign(next, i+1, value)
		if err != nil {
			return nil, err
		}

		value = child
	}

	out, ok := store(cur, key, value)
	if !ok {
		return nil, traversal(w.target, nil, w.path, i)
	}

	return out, nil
}

// container returns an empty container suited to being indexed by key.
func container(key any) any {
	if _, ok := numericIndex(key); ok {
		return []any{}
	}

	return map[string]any{}
}

func traversal(target, scope any, path Path, index int) error {
	return ErrPathTraversal.With(
		slog.Any("target", target),
		slog.Any("scope", scope),
		slog.String("path", path.String()),
		slog.Int("index", index),
	)
}

// keyString converts key to a map key.
func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}

	return ToString(key)
}

// numericIndex converts key to a sequence index when key is a non-negative
// integral number.
func numericIndex(key any) (int, bool) {
	if Type(key) != "number" {
		return 0, false
	}

	f := ToNumber(key)
	if f < 0 || f != math.Trunc(f) || f >= maxIndex {
		return 0, false
	}

	return int(f), true
}

// index converts key to a sequence index, accepting canonical decimal
// strings as well as numbers.
func index(key any) (int, bool) {
	if n, ok := numericIndex(key); ok {
		return n, true
	}

	s, ok := key.(string)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= maxIndex || strconv.Itoa(n) != s {
		return 0, false
	}

	return n, true
}

// lookup reads key from v. found is false when v has no such key; ok is
// false when v cannot be indexed at all.
func lookup(v, key any) (val any, found, ok bool) {
	switch c := v.(type) {
	case nil, undefined:
		return nil, false, false
	case map[string]any:
		val, found = c[keyString(key)]

		return val, found, true
	case []any:
		if key == "length" {
			return len(c), true, true
		}

		if i, ok := index(key); ok && i < len(c) {
			return c[i], true, true
		}

		return nil, false, true
	case string:
		if key == "length" {
			return utf8.RuneCountInString(c), true, true
		}

		if i, ok := index(key); ok {
			for j, r := range []rune(c) {
				if j == i {
					return string(r), true, true
				}
			}
		}

		return nil, false, true
	}

	return lookupValue(reflect.ValueOf(v), key)
}

func lookupValue(rv reflect.Value, key any) (any, bool, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		k, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false, true
		}

		if e := rv.MapIndex(k); e.IsValid() {
			return e.Interface(), true, true
		}

		return nil, false, true
	case reflect.Slice, reflect.Array:
		if key == "length" {
			return rv.Len(), true, true
		}

		if i, ok := index(key); ok && i < rv.Len() {
			return rv.Index(i).Interface(), true, true
		}

		return nil, false, true
	case reflect.String:
		return lookup(rv.String(), key)
	case reflect.Struct:
		if f, ok := field(rv, keyString(key)); ok {
			return f.Interface(), true, true
		}

		return nil, false, true
	}

	return nil, false, false
}

func mapKey(t reflect.Type, key any) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(keyString(key)).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i, ok := index(key); ok {
			return reflect.ValueOf(i).Convert(t), true
		}
	case reflect.Interface:
		if k := reflect.ValueOf(key); k.IsValid() && k.Type().AssignableTo(t) {
			return k, true
		}
	}

	return reflect.Value{}, false
}

// field finds the exported struct field named name, or tagged with name
// in its json tag.
func field(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if sf.Name == name || (tag != "" && tag == name) {
			return rv.Field(i), true
		}
	}

	return reflect.Value{}, false
}

// store assigns value at key in c and returns the container to keep in
// c's place.
func store(c, key, value any) (any, bool) {
	switch c := c.(type) {
	case map[string]any:
		if c == nil {
			c = map[string]any{}
		}

		c[keyString(key)] = value

		return c, true
	case []any:
		i, ok := index(key)
		if !ok {
			return nil, false
		}

		if i >= len(c) {
			c = append(c, make([]any, i+1-len(c))...)
		}

		c[i] = value

		return c, true
	case nil, undefined:
		return nil, false
	}

	return storeValue(reflect.ValueOf(c), key, value)
}

func storeValue(rv reflect.Value, key, value any) (any, bool) {
	orig := rv

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		k, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false
		}

		v, ok := assignable(value, rv.Type().Elem())
		if !ok {
			return nil, false
		}

		if rv.IsNil() {
			if !rv.CanSet() {
				rv = reflect.MakeMap(rv.Type())
				rv.SetMapIndex(k, v)

				return rv.Interface(), true
			}

			rv.Set(reflect.MakeMap(rv.Type()))
		}

		rv.SetMapIndex(k, v)

		return orig.Interface(), true
	case reflect.Slice:
		i, ok := index(key)
		if !ok || !rv.CanSet() || i >= rv.Len() {
			return nil, false
		}

		v, ok := assignable(value, rv.Type().Elem())
		if !ok {
			return nil, false
		}

		rv.Index(i).Set(v)

		return orig.Interface(), true
	case reflect.Struct:
		f, ok := field(rv, keyString(key))
		if !ok || !f.CanSet() {
			return nil, false
		}

		v, ok := assignable(value, f.Type())
		if !ok {
			return nil, false
		}

		f.Set(v)

		return orig.Interface(), true
	}

	return nil, false
}

// assignable converts value to t when Go permits it.
func assignable(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil || IsUndefined(value) {
		return reflect.Zero(t), true
	}

	v := reflect.ValueOf(value)

	switch {
	case v.Type().AssignableTo(t):
		return v, true
	case isNumeric(v) && isNumericType(t):
		return v.Convert(t), true
	case v.Kind() == reflect.String && t.Kind() == reflect.String:
		return v.Convert(t), true
	}

	return reflect.Value{}, false
}

func isNumericType(t reflect.Type) bool {
	return isNumeric(reflect.Zero(t))
}
