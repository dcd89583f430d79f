package markup

import (
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, s := range roundTrip {
		f.Add(s)
	}

	f.Add("<")
	f.Add("<!--")
	f.Add("<!DOCTYPE")
	f.Add(`<a b="`)
	f.Add(`<a b=\"x`)
	f.Add("</a></b><c>")
	f.Add("<script>")

	f.Fuzz(func(t *testing.T, input string) {
		tree, err := ParseString(t.Context(), input, WithComments(true))
		if err != nil {
			t.Fatalf("markup parsing must not fail: %v", err)
		}

		checkLinks(t, tree)

		// Serializing a parsed tree and parsing it again must not panic
		// and must still satisfy the link invariants.
		again := mustParse(t, tree.String(), WithComments(true))
		checkLinks(t, again)
	})
}

func FuzzParseAttrs(f *testing.F) {
	f.Add(`a="1" b='2' c=3 d`)
	f.Add(`=`)
	f.Add(`a=\"`)

	f.Fuzz(func(t *testing.T, input string) {
		attrs := ParseAttrs(input)

		for k := range attrs.All() {
			if k == "" {
				t.Fatalf("ParseAttrs(%q) produced an empty name", input)
			}
		}
	})
}
