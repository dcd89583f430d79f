package expr

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// MarshalJSON encodes undefined as null.
func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalYAML encodes undefined as null.
func (undefined) MarshalYAML() (any, error) { return nil, nil }

// Undefined is the result of reading a name or key that does not exist. It
// is distinct from nil, which stands for null.
var Undefined any = undefined{}

// IsUndefined reports whether v is [Undefined].
func IsUndefined(v any) bool {
	_, ok := v.(undefined)

	return ok
}

// Type classifies v as one of "undefined", "null", "boolean", "number",
// "string" or "object". Every Go numeric kind is a number.
func Type(v any) string {
	switch v.(type) {
	case undefined:
		return "undefined"
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		return "number"
	}

	if isNumeric(reflect.ValueOf(v)) {
		return "number"
	}

	return "object"
}

func isNumeric(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	}

	return false
}

func nullish(v any) bool {
	return v == nil || IsUndefined(v)
}

// Truthy reports whether v counts as true in a condition.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	if Type(v) == "number" {
		f := ToNumber(v)

		return f != 0 && !math.IsNaN(f)
	}

	return true
}

// ToNumber converts v to a float64 the way arithmetic operators see it.
// Values with no numeric reading convert to NaN.
func ToNumber(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case nil:
		return 0
	case undefined:
		return math.NaN()
	case bool:
		if v {
			return 1
		}

		return 0
	case string:
		return parseNumber(v)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		return parseNumber(ToString(v))
	}

	return math.NaN()
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)

	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") ||
		strings.Contains(s, "_") {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}

	return f
}

// ToString converts v to the string that concatenation would produce.
func ToString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(v)

	switch {
	case isNumeric(rv):
		return formatNumber(ToNumber(v))
	case rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array:
		parts := make([]string, rv.Len())

		for i := range parts {
			if e := rv.Index(i).Interface(); !nullish(e) {
				parts[i] = ToString(e)
			}
		}

		return strings.Join(parts, ",")
	}

	return "[object Object]"
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// primitive converts objects to their string form and leaves every other
// value alone.
func primitive(v any) any {
	if Type(v) == "object" {
		return ToString(v)
	}

	return v
}

// StrictEqual implements ===: both operands must have the same [Type].
// Numbers compare by value across Go numeric kinds, and maps, slices and
// pointers compare by identity.
func StrictEqual(a, b any) bool {
	ta := Type(a)
	if ta != Type(b) {
		return false
	}

	switch ta {
	case "undefined", "null":
		return true
	case "number":
		return ToNumber(a) == ToNumber(b)
	case "boolean", "string":
		return a == b
	}

	return sameObject(a, b)
}

func sameObject(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan,
		reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}

	return va.Comparable() && vb.Comparable() && va.Equal(vb)
}

// LooseEqual implements ==: null and undefined equal each other, booleans
// compare as numbers, numbers and strings compare numerically, and objects
// compare to primitives through their string form.
func LooseEqual(a, b any) bool {
	ta, tb := Type(a), Type(b)

	switch {
	case ta == tb:
		return StrictEqual(a, b)
	case nullish(a) && nullish(b):
		return true
	case nullish(a) || nullish(b):
		return false
	case ta == "number" && tb == "string", ta == "string" && tb == "number":
		return ToNumber(a) == ToNumber(b)
	case ta == "boolean":
		return LooseEqual(ToNumber(a), b)
	case tb == "boolean":
		return LooseEqual(a, ToNumber(b))
	case ta == "object":
		return LooseEqual(ToString(a), b)
	case tb == "object":
		return LooseEqual(a, ToString(b))
	}

	return false
}

// compare applies a relational operator. Two strings compare lexically;
// anything else compares numerically, and NaN makes every comparison false.
func compare(op string, a, b any) bool {
	a, b = primitive(a), primitive(b)

	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			c := strings.Compare(sa, sb)

			switch op {
			case ">":
				return c > 0
			case "<":
				return c < 0
			case ">=":
				return c >= 0
			case "<=":
				return c <= 0
			}
		}
	}

	x, y := ToNumber(a), ToNumber(b)

	switch op {
	case ">":
		return x > y
	case "<":
		return x < y
	case ">=":
		return x >= y
	case "<=":
		return x <= y
	}

	return false
}

// add implements +, which concatenates when either operand is a string or
// an object.
func add(a, b any) any {
	a, b = primitive(a), primitive(b)

	_, sa := a.(string)
	_, sb := b.(string)

	if sa || sb {
		return ToString(a) + ToString(b)
	}

	return ToNumber(a) + ToNumber(b)
}

func arith(op string, a, b any) any {
	x, y := ToNumber(a), ToNumber(b)

	switch op {
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case "%":
		return math.Mod(x, y)
	}

	return math.NaN()
}
